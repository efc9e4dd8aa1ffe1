// Package pg implements the persistence interfaces over PostgreSQL using
// database/sql with the pgx stdlib driver.
package pg

import (
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"pawpad.org/internal/auth"
	"pawpad.org/internal/dogs"
	"pawpad.org/internal/placement"
)

// Store bundles the per-domain stores over one connection pool.
type Store struct {
	db *sql.DB
}

var _ auth.Store = (*Store)(nil)

// Open connects to PostgreSQL and tunes the pool.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return New(db), nil
}

// New wraps an existing database handle (used by tests with sqlmock).
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for the readiness probe and migrations.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Users returns the staff account store.
func (s *Store) Users() auth.UserStore { return &userStore{db: s.db} }

// Shelters returns the shelter tenant store.
func (s *Store) Shelters() auth.ShelterStore { return &shelterStore{db: s.db} }

// Dogs returns the kennel store.
func (s *Store) Dogs() dogs.Store { return &dogStore{db: s.db} }

// Placements returns the adoption/foster store.
func (s *Store) Placements() placement.Store { return &placementStore{db: s.db} }

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
