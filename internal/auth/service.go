package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service orchestrates credential verification, shelter cross-checks and
// token issuance on top of a Store.
type Service struct {
	store  Store
	tokens *TokenService
	now    func() time.Time
}

// NewService constructs the authentication service.
func NewService(store Store, tokens *TokenService) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		now:    time.Now,
	}
}

// LoginResult carries the issued token together with the resolved records.
type LoginResult struct {
	Token   string
	User    *User
	Shelter *Shelter
}

// Login turns a username/password/shelter triple into a signed token.
//
// The user and shelter lookups run concurrently and are joined before any
// branching. Unknown usernames and wrong passwords produce the same
// ErrBadCredentials; a missing shelter, or one that does not own the user,
// produces ErrShelterMismatch. Nothing is written on any path.
func (s *Service) Login(ctx context.Context, userName, password, shelterUsername string) (*LoginResult, error) {
	type userLookup struct {
		user *User
		err  error
	}
	userCh := make(chan userLookup, 1)
	go func() {
		u, err := s.store.Users().FindByUsername(ctx, userName)
		userCh <- userLookup{user: u, err: err}
	}()

	shelter, shelterErr := s.store.Shelters().FindByUsername(ctx, shelterUsername)
	found := <-userCh

	if found.err != nil && !errors.Is(found.err, ErrNotFound) {
		return nil, found.err
	}
	if shelterErr != nil && !errors.Is(shelterErr, ErrNotFound) {
		return nil, shelterErr
	}

	if found.user == nil || errors.Is(found.err, ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if shelter == nil || errors.Is(shelterErr, ErrNotFound) || shelter.ID != found.user.ShelterID {
		return nil, ErrShelterMismatch
	}
	if !VerifyPassword(found.user.PasswordHash, password) {
		return nil, ErrBadCredentials
	}

	token, err := s.tokens.Issue(found.user.UserName, found.user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: found.user, Shelter: shelter}, nil
}

// RegisterUser creates a staff account with a hashed password and issues a
// token for the fresh session.
func (s *Service) RegisterUser(ctx context.Context, u *User, password string) (string, error) {
	existing, err := s.store.Users().FindByUsername(ctx, u.UserName)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}
	if existing != nil {
		return "", ErrUsernameTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}
	u.PasswordHash = hash
	if u.DateCreated.IsZero() {
		u.DateCreated = s.now().UTC()
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		return "", err
	}
	return s.tokens.Issue(u.UserName, u.ID)
}

// RegisterShelter creates a shelter tenant. New shelters always start in
// status "current".
func (s *Service) RegisterShelter(ctx context.Context, sh *Shelter) error {
	existing, err := s.store.Shelters().FindByUsername(ctx, sh.ShelterUsername)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return ErrShelterTaken
	}
	sh.ShelterStatus = "current"
	return s.store.Shelters().Create(ctx, sh)
}

// Authenticate verifies a bearer token and resolves its subject to a known
// user. A valid signature over a subject that no longer exists is still
// unauthorized.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.store.Users().FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// ValidateNewUser applies the registration rules for a new staff account and
// returns a client-facing message for the first violation found.
func ValidateNewUser(userName, password, firstName, lastName string) string {
	if strings.Contains(userName, " ") {
		return "Username cannot have spaces."
	}
	if len(password) < 8 {
		return "Password should be longer."
	}
	if len(password) > 72 {
		return "Password must be less than 72 characters"
	}
	if !strings.ContainsAny(password, "0123456789") {
		return "Password has to include at least a number."
	}
	if strings.Contains(firstName, " ") {
		return "First name cannot have spaces."
	}
	if strings.Contains(lastName, " ") {
		return "Last name cannot have spaces."
	}
	return ""
}
