package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"pawpad.org/internal/dogs"
)

type dogStore struct{ db *sql.DB }

var _ dogs.Store = (*dogStore)(nil)

func (s *dogStore) ListDogs(ctx context.Context) ([]dogs.DogListing, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, profile_img, dog_name, dog_status from dogs order by id asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []dogs.DogListing
	for rows.Next() {
		var (
			d   dogs.DogListing
			img sql.NullString
		)
		if err := rows.Scan(&d.ID, &img, &d.DogName, &d.DogStatus); err != nil {
			return nil, err
		}
		d.ProfileImg = img.String
		res = append(res, d)
	}
	return res, rows.Err()
}

const dogColumns = `id, dog_name, profile_img, age, arrival_date, gender, spayedneutered,
	updated_by, tag_number, microchip, dog_status, archive_date, adoption_date`

func scanDog(row *sql.Row) (*dogs.Dog, error) {
	var (
		d                                        dogs.Dog
		img, age, gender, updatedBy, tag, chip   sql.NullString
		arrivalDate, archiveDate, adoptionDate   sql.NullTime
	)
	err := row.Scan(&d.ID, &d.DogName, &img, &age, &arrivalDate, &gender, &d.SpayedNeutered,
		&updatedBy, &tag, &chip, &d.DogStatus, &archiveDate, &adoptionDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dogs.ErrNotFound
		}
		return nil, err
	}
	d.ProfileImg = img.String
	d.Age = age.String
	d.Gender = gender.String
	d.UpdatedBy = updatedBy.String
	d.TagNumber = tag.String
	d.Microchip = chip.String
	d.ArrivalDate = timePtr(arrivalDate)
	d.ArchiveDate = timePtr(archiveDate)
	d.AdoptionDate = timePtr(adoptionDate)
	return &d, nil
}

func (s *dogStore) FindDog(ctx context.Context, id int64) (*dogs.Dog, error) {
	row := s.db.QueryRowContext(ctx, `select `+dogColumns+` from dogs where id=$1`, id)
	return scanDog(row)
}

// NormalizedDog joins the dog with its vaccination history aggregated into a
// JSON array, mirroring the shape the clients already consume.
func (s *dogStore) NormalizedDog(ctx context.Context, id int64) (*dogs.NormalizedDog, error) {
	row := s.db.QueryRowContext(ctx,
		`select dogs.id, dogs.dog_name, dogs.profile_img, dogs.age, dogs.arrival_date, dogs.gender,
			dogs.spayedneutered, dogs.updated_by, dogs.tag_number, dogs.microchip, dogs.dog_status,
			dogs.archive_date,
			coalesce(
				json_agg(json_build_object(
					'shot_name', shots.shot_name,
					'shot_iscompleted', shots.shot_iscompleted,
					'shot_date', shots.shot_date
				)) filter (where shots.id is not null), '[]'
			) as shots_completed
		 from dogs
		 left join shots on shots.dog_id = dogs.id
		 where dogs.id=$1
		 group by dogs.id`, id)

	var (
		d                                      dogs.NormalizedDog
		img, age, gender, updatedBy, tag, chip sql.NullString
		arrivalDate, archiveDate               sql.NullTime
		shotsJSON                              []byte
	)
	err := row.Scan(&d.ID, &d.DogName, &img, &age, &arrivalDate, &gender, &d.SpayedNeutered,
		&updatedBy, &tag, &chip, &d.DogStatus, &archiveDate, &shotsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dogs.ErrNotFound
		}
		return nil, err
	}
	d.ProfileImg = img.String
	d.Age = age.String
	d.Gender = gender.String
	d.UpdatedBy = updatedBy.String
	d.TagNumber = tag.String
	d.Microchip = chip.String
	d.ArrivalDate = timePtr(arrivalDate)
	d.ArchiveDate = timePtr(archiveDate)
	if err := json.Unmarshal(shotsJSON, &d.ShotsCompleted); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *dogStore) CreateDog(ctx context.Context, d *dogs.Dog) error {
	if d.DogStatus == "" {
		d.DogStatus = dogs.StatusCurrent
	}
	row := s.db.QueryRowContext(ctx,
		`insert into dogs(dog_name, profile_img, age, arrival_date, gender, spayedneutered, tag_number, microchip, dog_status)
		 values($1,$2,$3,$4,$5,$6,$7,$8,$9) returning id`,
		d.DogName, nullString(d.ProfileImg), nullString(d.Age), nullTime(d.ArrivalDate), nullString(d.Gender),
		d.SpayedNeutered, nullString(d.TagNumber), nullString(d.Microchip), d.DogStatus,
	)
	return row.Scan(&d.ID)
}

func (s *dogStore) UpdateDog(ctx context.Context, d *dogs.Dog) error {
	res, err := s.db.ExecContext(ctx,
		`update dogs set dog_name=$2, profile_img=coalesce($3, profile_img), age=$4,
			arrival_date=$5, gender=$6, spayedneutered=$7, updated_by=$8
		 where id=$1`,
		d.ID, d.DogName, nullString(d.ProfileImg), nullString(d.Age), nullTime(d.ArrivalDate),
		nullString(d.Gender), d.SpayedNeutered, nullString(d.UpdatedBy),
	)
	if err != nil {
		return err
	}
	return requireRow(res, dogs.ErrNotFound)
}

func (s *dogStore) UpdateDogStatus(ctx context.Context, id int64, status string, when *time.Time) error {
	var (
		res sql.Result
		err error
	)
	switch status {
	case dogs.StatusArchived:
		res, err = s.db.ExecContext(ctx,
			`update dogs set dog_status=$2, archive_date=$3 where id=$1`, id, status, nullTime(when))
	case dogs.StatusAdopted:
		res, err = s.db.ExecContext(ctx,
			`update dogs set dog_status=$2, adoption_date=$3 where id=$1`, id, status, nullTime(when))
	default:
		res, err = s.db.ExecContext(ctx,
			`update dogs set dog_status=$2 where id=$1`, id, status)
	}
	if err != nil {
		return err
	}
	return requireRow(res, dogs.ErrNotFound)
}

func (s *dogStore) DeleteDog(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from dogs where id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, dogs.ErrNotFound)
}

// Shots ---------------------------------------------------------------------

func (s *dogStore) ShotNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `select distinct shot_name from shots order by shot_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *dogStore) ShotsByDog(ctx context.Context, dogID int64) ([]dogs.Shot, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, shot_name, shot_iscompleted, shot_date, dog_id from shots where dog_id=$1 order by id`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []dogs.Shot
	for rows.Next() {
		var (
			sh   dogs.Shot
			date sql.NullTime
		)
		if err := rows.Scan(&sh.ID, &sh.ShotName, &sh.ShotCompleted, &date, &sh.DogID); err != nil {
			return nil, err
		}
		sh.ShotDate = timePtr(date)
		res = append(res, sh)
	}
	return res, rows.Err()
}

func (s *dogStore) FindShot(ctx context.Context, id int64) (*dogs.Shot, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, shot_name, shot_iscompleted, shot_date, dog_id from shots where id=$1`, id)
	var (
		sh   dogs.Shot
		date sql.NullTime
	)
	if err := row.Scan(&sh.ID, &sh.ShotName, &sh.ShotCompleted, &date, &sh.DogID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dogs.ErrNotFound
		}
		return nil, err
	}
	sh.ShotDate = timePtr(date)
	return &sh, nil
}

func (s *dogStore) CreateShot(ctx context.Context, sh *dogs.Shot) error {
	row := s.db.QueryRowContext(ctx,
		`insert into shots(shot_name, shot_iscompleted, shot_date, dog_id) values($1,$2,$3,$4) returning id`,
		sh.ShotName, sh.ShotCompleted, nullTime(sh.ShotDate), sh.DogID,
	)
	return row.Scan(&sh.ID)
}

func (s *dogStore) UpdateShot(ctx context.Context, sh *dogs.Shot) error {
	res, err := s.db.ExecContext(ctx,
		`update shots set shot_name=$2, shot_iscompleted=$3, shot_date=$4 where id=$1`,
		sh.ID, sh.ShotName, sh.ShotCompleted, nullTime(sh.ShotDate),
	)
	if err != nil {
		return err
	}
	return requireRow(res, dogs.ErrNotFound)
}

func (s *dogStore) UpdateShotByName(ctx context.Context, dogID int64, name string, date time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`update shots set shot_date=$3, shot_iscompleted=true where dog_id=$1 and shot_name=$2`,
		dogID, name, date,
	)
	if err != nil {
		return err
	}
	return requireRow(res, dogs.ErrNotFound)
}

func (s *dogStore) DeleteShot(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from shots where id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, dogs.ErrNotFound)
}

func (s *dogStore) DeleteShotsByDog(ctx context.Context, dogID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `delete from shots where dog_id=$1`, dogID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Notes ---------------------------------------------------------------------

func (s *dogStore) NotesByDog(ctx context.Context, dogID int64) ([]dogs.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, type_of_note, notes, dog_id, created_by, note_updated_by, date_created
		 from notes where dog_id=$1 order by id`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []dogs.Note
	for rows.Next() {
		var (
			n         dogs.Note
			updatedBy sql.NullString
		)
		if err := rows.Scan(&n.ID, &n.TypeOfNote, &n.Notes, &n.DogID, &n.CreatedBy, &updatedBy, &n.DateCreated); err != nil {
			return nil, err
		}
		n.NoteUpdatedBy = updatedBy.String
		res = append(res, n)
	}
	return res, rows.Err()
}

func (s *dogStore) FindNote(ctx context.Context, id int64) (*dogs.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, type_of_note, notes, dog_id, created_by, note_updated_by, date_created
		 from notes where id=$1`, id)
	var (
		n         dogs.Note
		updatedBy sql.NullString
	)
	if err := row.Scan(&n.ID, &n.TypeOfNote, &n.Notes, &n.DogID, &n.CreatedBy, &updatedBy, &n.DateCreated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dogs.ErrNotFound
		}
		return nil, err
	}
	n.NoteUpdatedBy = updatedBy.String
	return &n, nil
}

func (s *dogStore) CreateNote(ctx context.Context, n *dogs.Note) error {
	row := s.db.QueryRowContext(ctx,
		`insert into notes(type_of_note, notes, dog_id, created_by, note_updated_by, date_created)
		 values($1,$2,$3,$4,$5,$6) returning id`,
		n.TypeOfNote, n.Notes, n.DogID, n.CreatedBy, nullString(n.NoteUpdatedBy), n.DateCreated,
	)
	return row.Scan(&n.ID)
}

func (s *dogStore) DeleteNote(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from notes where id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, dogs.ErrNotFound)
}

func (s *dogStore) DeleteNotesByDog(ctx context.Context, dogID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `delete from notes where dog_id=$1`, dogID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}
