package pg

import (
	"context"
	"database/sql"
	"errors"

	"pawpad.org/internal/auth"
)

type userStore struct{ db *sql.DB }

func (s *userStore) Create(ctx context.Context, u *auth.User) error {
	row := s.db.QueryRowContext(ctx,
		`insert into users(user_name, password, first_name, last_name, shelter_id, date_created)
		 values($1,$2,$3,$4,$5,$6) returning id`,
		u.UserName, u.PasswordHash, u.FirstName, u.LastName, u.ShelterID, u.DateCreated,
	)
	return row.Scan(&u.ID)
}

func (s *userStore) FindByUsername(ctx context.Context, userName string) (*auth.User, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, user_name, password, first_name, last_name, shelter_id, date_created
		 from users where user_name=$1`, userName)
	var u auth.User
	if err := row.Scan(&u.ID, &u.UserName, &u.PasswordHash, &u.FirstName, &u.LastName, &u.ShelterID, &u.DateCreated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

type shelterStore struct{ db *sql.DB }

func (s *shelterStore) Create(ctx context.Context, sh *auth.Shelter) error {
	row := s.db.QueryRowContext(ctx,
		`insert into shelter(shelter_name, shelter_username, shelter_country, shelter_address, shelter_phone, shelter_email, shelter_status)
		 values($1,$2,$3,$4,$5,$6,$7) returning id`,
		sh.ShelterName, sh.ShelterUsername, sh.ShelterCountry, sh.ShelterAddress, sh.ShelterPhone, sh.ShelterEmail, sh.ShelterStatus,
	)
	return row.Scan(&sh.ID)
}

func (s *shelterStore) FindByUsername(ctx context.Context, shelterUsername string) (*auth.Shelter, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, shelter_name, shelter_username, shelter_country, shelter_address, shelter_phone, shelter_email, shelter_status
		 from shelter where shelter_username=$1`, shelterUsername)
	var sh auth.Shelter
	if err := row.Scan(&sh.ID, &sh.ShelterName, &sh.ShelterUsername, &sh.ShelterCountry, &sh.ShelterAddress, &sh.ShelterPhone, &sh.ShelterEmail, &sh.ShelterStatus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return &sh, nil
}
