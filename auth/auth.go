// Package auth is the credential store consulted by the sign-in and
// sign-up flows. Users are persisted as a flat list under one key of an
// embedded key-value store, with the active session under another; it is
// independent of the pluggable inventory/order backends and never migrates
// into them.
package auth

import (
	"errors"
	"time"

	"github.com/stockroomhq/stockroom/id"
)

var (
	// ErrDuplicateUser is returned when signing up with an email that is
	// already registered (compared case-insensitively).
	ErrDuplicateUser = errors.New("auth: a user with this email already exists")

	// ErrUserNotFound is returned when signing in with an unregistered email.
	ErrUserNotFound = errors.New("auth: no user found with this email")

	// ErrIncorrectPassword is returned when the password digest does not
	// match the stored one.
	ErrIncorrectPassword = errors.New("auth: incorrect password")
)

// User is the public account record. It never carries the password digest.
type User struct {
	ID        id.UserID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// storedUser is the persisted record, digest included.
type storedUser struct {
	User
	PasswordDigest string `json:"password_digest"`
}

func (u *storedUser) public() *User {
	p := u.User
	return &p
}
