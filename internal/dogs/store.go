package dogs

import (
	"context"
	"time"
)

// Store describes persistence operations for dogs, shots and notes.
type Store interface {
	ListDogs(ctx context.Context) ([]DogListing, error)
	FindDog(ctx context.Context, id int64) (*Dog, error)
	NormalizedDog(ctx context.Context, id int64) (*NormalizedDog, error)
	CreateDog(ctx context.Context, d *Dog) error
	UpdateDog(ctx context.Context, d *Dog) error
	UpdateDogStatus(ctx context.Context, id int64, status string, when *time.Time) error
	DeleteDog(ctx context.Context, id int64) error

	ShotNames(ctx context.Context) ([]string, error)
	ShotsByDog(ctx context.Context, dogID int64) ([]Shot, error)
	FindShot(ctx context.Context, id int64) (*Shot, error)
	CreateShot(ctx context.Context, s *Shot) error
	UpdateShot(ctx context.Context, s *Shot) error
	UpdateShotByName(ctx context.Context, dogID int64, name string, date time.Time) error
	DeleteShot(ctx context.Context, id int64) error
	DeleteShotsByDog(ctx context.Context, dogID int64) (int64, error)

	NotesByDog(ctx context.Context, dogID int64) ([]Note, error)
	FindNote(ctx context.Context, id int64) (*Note, error)
	CreateNote(ctx context.Context, n *Note) error
	DeleteNote(ctx context.Context, id int64) error
	DeleteNotesByDog(ctx context.Context, dogID int64) (int64, error)
}
