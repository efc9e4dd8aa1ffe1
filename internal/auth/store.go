package auth

import "context"

// Store describes persistence operations required by the auth subsystem.
type Store interface {
	Users() UserStore
	Shelters() ShelterStore
}

// UserStore manages staff accounts.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, userName string) (*User, error)
}

// ShelterStore manages shelter tenants.
type ShelterStore interface {
	Create(ctx context.Context, s *Shelter) error
	FindByUsername(ctx context.Context, shelterUsername string) (*Shelter, error)
}
