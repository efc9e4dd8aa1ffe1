package placement

import "errors"

var (
	// ErrNotFound is returned when no placement record exists for a dog.
	ErrNotFound = errors.New("placement: not found")
	// ErrDogNotFound is returned when the referenced dog does not exist.
	ErrDogNotFound = errors.New("placement: dog not found")
)
