package dogs

import "errors"

var (
	// ErrNotFound is returned when a dog, shot or note does not exist.
	ErrNotFound = errors.New("dogs: not found")
	// ErrInvalidInput flags a request the store cannot act on.
	ErrInvalidInput = errors.New("dogs: invalid input")
)
