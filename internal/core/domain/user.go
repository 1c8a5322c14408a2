package domain

import (
	"errors"
	"fmt"
	"time"
)

// Role is the access level assigned to a user account.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether the role is one of the defined enum values.
// Unknown values are rejected at the boundary, never coerced.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("user with this email already exists")
var ErrInvalidOldPassword = errors.New("invalid old password")
var ErrNoPasswordSet = errors.New("user does not have a password set")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrLoginThrottled = errors.New("too many failed login attempts")

// ValidationError carries a user-correctable policy or input failure. The
// reason text is safe to echo back to the caller verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// User is the account aggregate. PasswordHash is never serialized and is
// cleared before a user leaves the service layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	UserType     Role      `json:"user_type"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

// HasPassword reports whether a credential has been set on the account.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Sanitized returns a copy of the user with the password hash stripped.
func (u *User) Sanitized() *User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
