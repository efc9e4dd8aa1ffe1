package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"pawpad.org/internal/auth"
	"pawpad.org/internal/dogs"
	"pawpad.org/internal/placement"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserFindByUsername(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("select id, user_name, password, first_name, last_name, shelter_id, date_created").
		WithArgs("pawpad").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_name", "password", "first_name", "last_name", "shelter_id", "date_created"}).
			AddRow(int64(1), "pawpad", "$2a$12$hash", "Paw", "Pad", int64(3), created))

	u, err := store.Users().FindByUsername(context.Background(), "pawpad")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u.ID != 1 || u.ShelterID != 3 || u.PasswordHash != "$2a$12$hash" {
		t.Fatalf("unexpected user: %+v", u)
	}
	expectationsMet(t, mock)
}

func TestUserFindByUsernameNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select id, user_name, password").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.Users().FindByUsername(context.Background(), "ghost")
	if !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	expectationsMet(t, mock)
}

func TestShelterCreateReturnsID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("insert into shelter").
		WithArgs("Demo Shelter", "demo", "NO", "Oslo", "123", "demo@example.com", "current").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	sh := &auth.Shelter{
		ShelterName:     "Demo Shelter",
		ShelterUsername: "demo",
		ShelterCountry:  "NO",
		ShelterAddress:  "Oslo",
		ShelterPhone:    "123",
		ShelterEmail:    "demo@example.com",
		ShelterStatus:   "current",
	}
	if err := store.Shelters().Create(context.Background(), sh); err != nil {
		t.Fatalf("create: %v", err)
	}
	if sh.ID != 5 {
		t.Fatalf("id = %d, want 5", sh.ID)
	}
	expectationsMet(t, mock)
}

func TestDogUpdateStatusMissingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("update dogs set dog_status").
		WithArgs(int64(9), dogs.StatusAdopted, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	when := time.Now().UTC()
	err := store.Dogs().UpdateDogStatus(context.Background(), 9, dogs.StatusAdopted, &when)
	if !errors.Is(err, dogs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	expectationsMet(t, mock)
}

func TestNormalizedDogAggregatesShots(t *testing.T) {
	store, mock := newMockStore(t)
	shotsJSON := `[{"shot_name":"rabies","shot_iscompleted":true,"shot_date":"2025-01-15T00:00:00Z"}]`

	mock.ExpectQuery("left join shots on shots.dog_id = dogs.id").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "dog_name", "profile_img", "age", "arrival_date", "gender", "spayedneutered",
			"updated_by", "tag_number", "microchip", "dog_status", "archive_date", "shots_completed",
		}).AddRow(int64(2), "Rex", nil, "3", nil, "male", true,
			nil, nil, nil, dogs.StatusCurrent, nil, []byte(shotsJSON)))

	nd, err := store.Dogs().NormalizedDog(context.Background(), 2)
	if err != nil {
		t.Fatalf("normalized dog: %v", err)
	}
	if nd.DogName != "Rex" || len(nd.ShotsCompleted) != 1 {
		t.Fatalf("unexpected record: %+v", nd)
	}
	if nd.ShotsCompleted[0].ShotName != "rabies" || !nd.ShotsCompleted[0].ShotCompleted {
		t.Fatalf("unexpected shots aggregation: %+v", nd.ShotsCompleted)
	}
	expectationsMet(t, mock)
}

func TestAdoptionByDogNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("from adoption where dog_id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.Placements().AdoptionByDog(context.Background(), 7)
	if !errors.Is(err, placement.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	expectationsMet(t, mock)
}

func TestFosterCreateReturnsID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("insert into foster").
		WithArgs(int64(4), "Sam Lee", sqlmock.AnyArg(), "sam@example.com", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	f := &placement.Foster{
		DogID:       4,
		FosterName:  "Sam Lee",
		FosterEmail: "sam@example.com",
	}
	if err := store.Placements().CreateFoster(context.Background(), f); err != nil {
		t.Fatalf("create foster: %v", err)
	}
	if f.ID != 11 {
		t.Fatalf("id = %d, want 11", f.ID)
	}
	expectationsMet(t, mock)
}
