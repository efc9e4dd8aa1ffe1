package placement

import (
	"context"
	"errors"

	"pawpad.org/internal/dogs"
)

// Service orchestrates placement submissions: every submit checks the dog
// exists, flips its status, then records the placement; every removal
// reverts the dog to Current before deleting the record.
type Service struct {
	store Store
	dogs  dogs.Store
}

// NewService constructs the placement service.
func NewService(store Store, dogStore dogs.Store) *Service {
	return &Service{store: store, dogs: dogStore}
}

func (s *Service) markDog(ctx context.Context, dogID int64, status string) error {
	if _, err := s.dogs.FindDog(ctx, dogID); err != nil {
		if errors.Is(err, dogs.ErrNotFound) {
			return ErrDogNotFound
		}
		return err
	}
	return s.dogs.UpdateDogStatus(ctx, dogID, status, nil)
}

// SubmitAdoption marks the dog Adopted and stores the adoption record.
func (s *Service) SubmitAdoption(ctx context.Context, a *Adoption) error {
	if err := s.markDog(ctx, a.DogID, dogs.StatusAdopted); err != nil {
		return err
	}
	return s.store.CreateAdoption(ctx, a)
}

// AdoptionByDog returns the adoption record for a dog.
func (s *Service) AdoptionByDog(ctx context.Context, dogID int64) (*Adoption, error) {
	a, err := s.store.AdoptionByDog(ctx, dogID)
	if err != nil {
		return nil, err
	}
	a.DogStatus = dogs.StatusAdopted
	return a, nil
}

// RemoveAdoption reverts the dog to Current and deletes the record.
func (s *Service) RemoveAdoption(ctx context.Context, dogID int64) error {
	if err := s.markDog(ctx, dogID, dogs.StatusCurrent); err != nil {
		return err
	}
	return s.store.DeleteAdoption(ctx, dogID)
}

// SubmitFoster marks the dog Fostered and stores the foster record.
func (s *Service) SubmitFoster(ctx context.Context, f *Foster) error {
	if err := s.markDog(ctx, f.DogID, dogs.StatusFostered); err != nil {
		return err
	}
	return s.store.CreateFoster(ctx, f)
}

// FosterByDog returns the foster record for a dog.
func (s *Service) FosterByDog(ctx context.Context, dogID int64) (*Foster, error) {
	f, err := s.store.FosterByDog(ctx, dogID)
	if err != nil {
		return nil, err
	}
	f.DogStatus = dogs.StatusFostered
	return f, nil
}

// RemoveFoster reverts the dog to Current and deletes the record.
func (s *Service) RemoveFoster(ctx context.Context, dogID int64) error {
	if err := s.markDog(ctx, dogID, dogs.StatusCurrent); err != nil {
		return err
	}
	return s.store.DeleteFoster(ctx, dogID)
}
