package placement

import "context"

// Store describes persistence operations for adoption and foster records.
type Store interface {
	CreateAdoption(ctx context.Context, a *Adoption) error
	AdoptionByDog(ctx context.Context, dogID int64) (*Adoption, error)
	DeleteAdoption(ctx context.Context, dogID int64) error

	CreateFoster(ctx context.Context, f *Foster) error
	FosterByDog(ctx context.Context, dogID int64) (*Foster, error)
	DeleteFoster(ctx context.Context, dogID int64) error
}
