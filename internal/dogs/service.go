package dogs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Service holds the small amount of kennel logic that sits above the store:
// status transitions and the upsert rule for vaccinations.
type Service struct {
	store Store
}

// NewService constructs the kennel service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Store exposes the underlying store for plain pass-through reads.
func (s *Service) Store() Store {
	return s.store
}

// Archive stamps the archive date and moves the dog to Archived.
func (s *Service) Archive(ctx context.Context, dogID int64, when time.Time) error {
	return s.store.UpdateDogStatus(ctx, dogID, StatusArchived, &when)
}

// Adopt stamps the adoption date and moves the dog to Adopted.
func (s *Service) Adopt(ctx context.Context, dogID int64, when time.Time) error {
	return s.store.UpdateDogStatus(ctx, dogID, StatusAdopted, &when)
}

// Update verifies the dog exists before writing and stamps updated_by with
// the acting staff member's first name.
func (s *Service) Update(ctx context.Context, d *Dog, updatedBy string) error {
	if d.ID <= 0 {
		return fmt.Errorf("%w: dog id is required", ErrInvalidInput)
	}
	if _, err := s.store.FindDog(ctx, d.ID); err != nil {
		return err
	}
	d.UpdatedBy = updatedBy
	return s.store.UpdateDog(ctx, d)
}

// Delete removes the dog and returns the record so callers can clean up the
// stored profile image.
func (s *Service) Delete(ctx context.Context, dogID int64) (*Dog, error) {
	dog, err := s.store.FindDog(ctx, dogID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteDog(ctx, dogID); err != nil {
		return nil, err
	}
	return dog, nil
}

// RecordShot updates the named shot for the dog, or inserts it as completed
// when the dog has no shot under that name yet.
func (s *Service) RecordShot(ctx context.Context, dogID int64, name string, date time.Time) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: shot name is required", ErrInvalidInput)
	}
	existing, err := s.store.ShotsByDog(ctx, dogID)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return ErrNotFound
	}
	for _, shot := range existing {
		if shot.ShotName == name {
			return s.store.UpdateShotByName(ctx, dogID, name, date)
		}
	}
	return s.store.CreateShot(ctx, &Shot{
		DogID:         dogID,
		ShotName:      name,
		ShotDate:      &date,
		ShotCompleted: true,
	})
}

// AddNote stamps authorship fields and stores the note.
func (s *Service) AddNote(ctx context.Context, n *Note, authorID int64, authorFirstName string) error {
	n.CreatedBy = authorID
	n.NoteUpdatedBy = authorFirstName
	if n.DateCreated.IsZero() {
		n.DateCreated = time.Now().UTC()
	}
	return s.store.CreateNote(ctx, n)
}

// RemoveNote deletes a single note, reporting ErrNotFound when absent.
func (s *Service) RemoveNote(ctx context.Context, noteID int64) error {
	if _, err := s.store.FindNote(ctx, noteID); err != nil {
		return err
	}
	return s.store.DeleteNote(ctx, noteID)
}

// RemoveShot deletes a single shot, reporting ErrNotFound when absent.
func (s *Service) RemoveShot(ctx context.Context, shotID int64) error {
	if _, err := s.store.FindShot(ctx, shotID); err != nil {
		return err
	}
	return s.store.DeleteShot(ctx, shotID)
}

// IsMissing reports whether err means the record was absent.
func IsMissing(err error) bool {
	return errors.Is(err, ErrNotFound)
}
