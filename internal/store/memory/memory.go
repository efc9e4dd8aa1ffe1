// Package memory provides an in-memory implementation of the persistence
// interfaces. It backs the HTTP end-to-end tests and local development
// without PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pawpad.org/internal/auth"
	"pawpad.org/internal/dogs"
	"pawpad.org/internal/placement"
)

// Store keeps every table in process memory guarded by one mutex; the
// traffic it serves (tests, local dev) never needs finer granularity.
type Store struct {
	mu        sync.Mutex
	users     map[int64]*auth.User
	shelters  map[int64]*auth.Shelter
	dogs      map[int64]*dogs.Dog
	shots     map[int64]*dogs.Shot
	notes     map[int64]*dogs.Note
	adoptions map[int64]*placement.Adoption
	fosters   map[int64]*placement.Foster
	nextID    map[string]int64
}

var (
	_ auth.Store      = (*Store)(nil)
	_ dogs.Store      = (*Store)(nil)
	_ placement.Store = (*Store)(nil)
)

// New returns an empty store.
func New() *Store {
	return &Store{
		users:     make(map[int64]*auth.User),
		shelters:  make(map[int64]*auth.Shelter),
		dogs:      make(map[int64]*dogs.Dog),
		shots:     make(map[int64]*dogs.Shot),
		notes:     make(map[int64]*dogs.Note),
		adoptions: make(map[int64]*placement.Adoption),
		fosters:   make(map[int64]*placement.Foster),
		nextID:    make(map[string]int64),
	}
}

func (s *Store) next(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// Users returns the staff account store.
func (s *Store) Users() auth.UserStore { return (*userStore)(s) }

// Shelters returns the shelter tenant store.
func (s *Store) Shelters() auth.ShelterStore { return (*shelterStore)(s) }

// Auth -----------------------------------------------------------------------

type userStore Store

func (s *userStore) Create(_ context.Context, u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = (*Store)(s).next("users")
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *userStore) FindByUsername(_ context.Context, userName string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UserName == userName {
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrNotFound
}

type shelterStore Store

func (s *shelterStore) Create(_ context.Context, sh *auth.Shelter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh.ID = (*Store)(s).next("shelter")
	cp := *sh
	s.shelters[sh.ID] = &cp
	return nil
}

func (s *shelterStore) FindByUsername(_ context.Context, shelterUsername string) (*auth.Shelter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range s.shelters {
		if sh.ShelterUsername == shelterUsername {
			cp := *sh
			return &cp, nil
		}
	}
	return nil, auth.ErrNotFound
}

// Dogs -----------------------------------------------------------------------

func (s *Store) ListDogs(_ context.Context) ([]dogs.DogListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []dogs.DogListing
	for _, d := range s.dogs {
		res = append(res, dogs.DogListing{
			ID:         d.ID,
			ProfileImg: d.ProfileImg,
			DogName:    d.DogName,
			DogStatus:  d.DogStatus,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *Store) FindDog(_ context.Context, id int64) (*dogs.Dog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dogs[id]
	if !ok {
		return nil, dogs.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *Store) NormalizedDog(ctx context.Context, id int64) (*dogs.NormalizedDog, error) {
	d, err := s.FindDog(ctx, id)
	if err != nil {
		return nil, err
	}
	shots, err := s.ShotsByDog(ctx, id)
	if err != nil {
		return nil, err
	}
	nd := &dogs.NormalizedDog{Dog: *d, ShotsCompleted: []dogs.ShotSummary{}}
	for _, sh := range shots {
		nd.ShotsCompleted = append(nd.ShotsCompleted, dogs.ShotSummary{
			ShotName:      sh.ShotName,
			ShotCompleted: sh.ShotCompleted,
			ShotDate:      sh.ShotDate,
		})
	}
	return nd, nil
}

func (s *Store) CreateDog(_ context.Context, d *dogs.Dog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.DogStatus == "" {
		d.DogStatus = dogs.StatusCurrent
	}
	d.ID = s.next("dogs")
	cp := *d
	s.dogs[d.ID] = &cp
	return nil
}

func (s *Store) UpdateDog(_ context.Context, d *dogs.Dog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.dogs[d.ID]
	if !ok {
		return dogs.ErrNotFound
	}
	cp := *d
	cp.DogStatus = existing.DogStatus
	if cp.ProfileImg == "" {
		cp.ProfileImg = existing.ProfileImg
	}
	s.dogs[d.ID] = &cp
	return nil
}

func (s *Store) UpdateDogStatus(_ context.Context, id int64, status string, when *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dogs[id]
	if !ok {
		return dogs.ErrNotFound
	}
	d.DogStatus = status
	switch status {
	case dogs.StatusArchived:
		d.ArchiveDate = when
	case dogs.StatusAdopted:
		d.AdoptionDate = when
	}
	return nil
}

func (s *Store) DeleteDog(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dogs[id]; !ok {
		return dogs.ErrNotFound
	}
	delete(s.dogs, id)
	return nil
}

// Shots ----------------------------------------------------------------------

func (s *Store) ShotNames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	var names []string
	for _, sh := range s.shots {
		if _, ok := seen[sh.ShotName]; ok {
			continue
		}
		seen[sh.ShotName] = struct{}{}
		names = append(names, sh.ShotName)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) ShotsByDog(_ context.Context, dogID int64) ([]dogs.Shot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []dogs.Shot
	for _, sh := range s.shots {
		if sh.DogID == dogID {
			res = append(res, *sh)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *Store) FindShot(_ context.Context, id int64) (*dogs.Shot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shots[id]
	if !ok {
		return nil, dogs.ErrNotFound
	}
	cp := *sh
	return &cp, nil
}

func (s *Store) CreateShot(_ context.Context, sh *dogs.Shot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh.ID = s.next("shots")
	cp := *sh
	s.shots[sh.ID] = &cp
	return nil
}

func (s *Store) UpdateShot(_ context.Context, sh *dogs.Shot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shots[sh.ID]; !ok {
		return dogs.ErrNotFound
	}
	cp := *sh
	s.shots[sh.ID] = &cp
	return nil
}

func (s *Store) UpdateShotByName(_ context.Context, dogID int64, name string, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range s.shots {
		if sh.DogID == dogID && sh.ShotName == name {
			sh.ShotDate = &date
			sh.ShotCompleted = true
			return nil
		}
	}
	return dogs.ErrNotFound
}

func (s *Store) DeleteShot(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shots[id]; !ok {
		return dogs.ErrNotFound
	}
	delete(s.shots, id)
	return nil
}

func (s *Store) DeleteShotsByDog(_ context.Context, dogID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, sh := range s.shots {
		if sh.DogID == dogID {
			delete(s.shots, id)
			n++
		}
	}
	return n, nil
}

// Notes ----------------------------------------------------------------------

func (s *Store) NotesByDog(_ context.Context, dogID int64) ([]dogs.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []dogs.Note
	for _, n := range s.notes {
		if n.DogID == dogID {
			res = append(res, *n)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *Store) FindNote(_ context.Context, id int64) (*dogs.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return nil, dogs.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (s *Store) CreateNote(_ context.Context, n *dogs.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.next("notes")
	cp := *n
	s.notes[n.ID] = &cp
	return nil
}

func (s *Store) DeleteNote(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return dogs.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *Store) DeleteNotesByDog(_ context.Context, dogID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, note := range s.notes {
		if note.DogID == dogID {
			delete(s.notes, id)
			n++
		}
	}
	return n, nil
}

// Placements -----------------------------------------------------------------

func (s *Store) CreateAdoption(_ context.Context, a *placement.Adoption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.next("adoption")
	cp := *a
	s.adoptions[a.ID] = &cp
	return nil
}

func (s *Store) AdoptionByDog(_ context.Context, dogID int64) (*placement.Adoption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.adoptions {
		if a.DogID == dogID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, placement.ErrNotFound
}

func (s *Store) DeleteAdoption(_ context.Context, dogID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.adoptions {
		if a.DogID == dogID {
			delete(s.adoptions, id)
		}
	}
	return nil
}

func (s *Store) CreateFoster(_ context.Context, f *placement.Foster) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = s.next("foster")
	cp := *f
	s.fosters[f.ID] = &cp
	return nil
}

func (s *Store) FosterByDog(_ context.Context, dogID int64) (*placement.Foster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.fosters {
		if f.DogID == dogID {
			cp := *f
			return &cp, nil
		}
	}
	return nil, placement.ErrNotFound
}

func (s *Store) DeleteFoster(_ context.Context, dogID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, f := range s.fosters {
		if f.DogID == dogID {
			delete(s.fosters, id)
		}
	}
	return nil
}
