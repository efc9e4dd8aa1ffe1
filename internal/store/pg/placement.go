package pg

import (
	"context"
	"database/sql"
	"errors"

	"pawpad.org/internal/placement"
)

type placementStore struct{ db *sql.DB }

var _ placement.Store = (*placementStore)(nil)

func (s *placementStore) CreateAdoption(ctx context.Context, a *placement.Adoption) error {
	row := s.db.QueryRowContext(ctx,
		`insert into adoption(dog_id, adopter_name, adoption_date, adopter_email, adopter_phone, adopter_country, contract_img_url)
		 values($1,$2,$3,$4,$5,$6,$7) returning id`,
		a.DogID, a.AdopterName, nullTime(a.AdoptionDate), nullString(a.AdopterEmail),
		nullString(a.AdopterPhone), nullString(a.AdopterCountry), nullString(a.ContractImgURL),
	)
	return row.Scan(&a.ID)
}

func (s *placementStore) AdoptionByDog(ctx context.Context, dogID int64) (*placement.Adoption, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, dog_id, adopter_name, adoption_date, adopter_email, adopter_phone, adopter_country, contract_img_url
		 from adoption where dog_id=$1`, dogID)
	var (
		a                     placement.Adoption
		date                  sql.NullTime
		email, phone, country sql.NullString
		contract              sql.NullString
	)
	if err := row.Scan(&a.ID, &a.DogID, &a.AdopterName, &date, &email, &phone, &country, &contract); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, placement.ErrNotFound
		}
		return nil, err
	}
	a.AdoptionDate = timePtr(date)
	a.AdopterEmail = email.String
	a.AdopterPhone = phone.String
	a.AdopterCountry = country.String
	a.ContractImgURL = contract.String
	return &a, nil
}

func (s *placementStore) DeleteAdoption(ctx context.Context, dogID int64) error {
	_, err := s.db.ExecContext(ctx, `delete from adoption where dog_id=$1`, dogID)
	return err
}

func (s *placementStore) CreateFoster(ctx context.Context, f *placement.Foster) error {
	row := s.db.QueryRowContext(ctx,
		`insert into foster(dog_id, foster_name, foster_date, foster_email, foster_phone, foster_country, contract_url)
		 values($1,$2,$3,$4,$5,$6,$7) returning id`,
		f.DogID, f.FosterName, nullTime(f.FosterDate), nullString(f.FosterEmail),
		nullString(f.FosterPhone), nullString(f.FosterCountry), nullString(f.ContractURL),
	)
	return row.Scan(&f.ID)
}

func (s *placementStore) FosterByDog(ctx context.Context, dogID int64) (*placement.Foster, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, dog_id, foster_name, foster_date, foster_email, foster_phone, foster_country, contract_url
		 from foster where dog_id=$1`, dogID)
	var (
		f                     placement.Foster
		date                  sql.NullTime
		email, phone, country sql.NullString
		contract              sql.NullString
	)
	if err := row.Scan(&f.ID, &f.DogID, &f.FosterName, &date, &email, &phone, &country, &contract); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, placement.ErrNotFound
		}
		return nil, err
	}
	f.FosterDate = timePtr(date)
	f.FosterEmail = email.String
	f.FosterPhone = phone.String
	f.FosterCountry = country.String
	f.ContractURL = contract.String
	return &f, nil
}

func (s *placementStore) DeleteFoster(ctx context.Context, dogID int64) error {
	_, err := s.db.ExecContext(ctx, `delete from foster where dog_id=$1`, dogID)
	return err
}
