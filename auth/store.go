package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stockroomhq/stockroom/id"
)

// Key layout. The user list is one flat JSON array; the session is a
// single JSON record for the signed-in user.
const (
	keyUsers   = "auth_users_data"
	keySession = "auth_user_data"
)

// Demo accounts seeded on first initialization.
var demoAccounts = []struct {
	email    string
	password string
	name     string
}{
	{"admin@example.com", "password", "Admin User"},
	{"admin@gmail.com", "admin", "Demo Admin"},
}

// Store is the credential store.
type Store struct {
	backend *Backend
	logger  *slog.Logger
}

// NewStore creates a credential store over the given backend.
func NewStore(backend *Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, logger: logger}
}

// Open opens the auth database at path and returns a store over it.
func Open(path string, logger *slog.Logger) (*Store, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, fmt.Errorf("auth: open store: %w", err)
	}
	return NewStore(backend, logger), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Initialize ensures the user list exists and seeds the demo accounts on
// first run. Existing accounts are never overwritten; the session is left
// untouched.
func (s *Store) Initialize(_ context.Context) error {
	users, err := s.loadUsers()
	if err != nil {
		return fmt.Errorf("auth: initialize: %w", err)
	}
	for _, demo := range demoAccounts {
		if findUser(users, demo.email) != nil {
			continue
		}
		users = append(users, storedUser{
			User: User{
				ID:        id.NewUserID(),
				Email:     demo.email,
				Name:      demo.name,
				CreatedAt: time.Now().UTC(),
			},
			PasswordDigest: digest(demo.password),
		})
		s.logger.Info("seeded demo account", "email", demo.email)
	}
	if err := s.saveUsers(users); err != nil {
		return fmt.Errorf("auth: initialize: %w", err)
	}
	return nil
}

// UserExists reports whether an account with the email is registered.
// Comparison is case-insensitive.
func (s *Store) UserExists(_ context.Context, email string) (bool, error) {
	users, err := s.loadUsers()
	if err != nil {
		return false, fmt.Errorf("auth: user exists: %w", err)
	}
	return findUser(users, email) != nil, nil
}

// SignUp registers a new account and signs it in. Fails with
// ErrDuplicateUser when the email is already taken.
func (s *Store) SignUp(_ context.Context, email, password, name string) (*User, error) {
	users, err := s.loadUsers()
	if err != nil {
		return nil, fmt.Errorf("auth: sign up: %w", err)
	}
	if findUser(users, email) != nil {
		return nil, ErrDuplicateUser
	}

	u := storedUser{
		User: User{
			ID:        id.NewUserID(),
			Email:     email,
			Name:      name,
			CreatedAt: time.Now().UTC(),
		},
		PasswordDigest: digest(password),
	}
	users = append(users, u)
	if err := s.saveUsers(users); err != nil {
		return nil, fmt.Errorf("auth: sign up: %w", err)
	}
	if err := s.saveSession(u.public()); err != nil {
		return nil, fmt.Errorf("auth: sign up: %w", err)
	}
	return u.public(), nil
}

// SignIn authenticates an account and records the session. The no-user and
// wrong-password failures are distinct sentinels.
func (s *Store) SignIn(_ context.Context, email, password string) (*User, error) {
	users, err := s.loadUsers()
	if err != nil {
		return nil, fmt.Errorf("auth: sign in: %w", err)
	}
	u := findUser(users, email)
	if u == nil {
		return nil, ErrUserNotFound
	}
	if u.PasswordDigest != digest(password) {
		return nil, ErrIncorrectPassword
	}
	if err := s.saveSession(u.public()); err != nil {
		return nil, fmt.Errorf("auth: sign in: %w", err)
	}
	return u.public(), nil
}

// SignOut clears the session record. The user list is untouched.
func (s *Store) SignOut(_ context.Context) error {
	if err := s.backend.delete(keySession); err != nil {
		return fmt.Errorf("auth: sign out: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user, or nil when signed out.
func (s *Store) CurrentUser(_ context.Context) (*User, error) {
	raw, err := s.backend.get(keySession)
	if err != nil {
		return nil, fmt.Errorf("auth: current user: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("auth: current user: %w", err)
	}
	return &u, nil
}

func (s *Store) loadUsers() ([]storedUser, error) {
	raw, err := s.backend.get(keyUsers)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []storedUser{}, nil
	}
	var users []storedUser
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) saveUsers(users []storedUser) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.backend.set(keyUsers, raw)
}

func (s *Store) saveSession(u *User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.backend.set(keySession, raw)
}

// findUser looks an account up by email, case-insensitively.
func findUser(users []storedUser, email string) *storedUser {
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i]
		}
	}
	return nil
}
