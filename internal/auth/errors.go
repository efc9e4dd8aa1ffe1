package auth

import "errors"

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("auth: not found")
	// ErrInvalidToken indicates the token failed verification.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrBadCredentials covers both unknown usernames and wrong passwords so
	// login responses cannot be used to enumerate accounts.
	ErrBadCredentials = errors.New("auth: incorrect username or password")
	// ErrShelterMismatch is returned when the claimed shelter is missing or
	// does not own the authenticating user.
	ErrShelterMismatch = errors.New("auth: shelter missing or does not match")
	// ErrUsernameTaken is returned on registration conflicts.
	ErrUsernameTaken = errors.New("auth: username already taken")
	// ErrShelterTaken is returned on shelter registration conflicts.
	ErrShelterTaken = errors.New("auth: shelter username already taken")
)
