package domain

import (
	"errors"
	"time"
)

// RoleMember is the default role granted at signup. Role strings are opaque
// tags carried through the token; this service never interprets them.
const RoleMember = "ROLE_MEMBER"

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrTooManyAttempts = errors.New("too many sign-in attempts")

// User models a registered account. PasswordHash is a bcrypt hash and is
// never serialized in responses.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
