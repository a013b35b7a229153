package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
)

// User represents a shop account. The order and payment workflows only need
// it as a lookup collaborator; account management lives outside this core.
type User struct {
	ID       uuid.UUID
	Username string
	Email    string
	Roles    []auth.Role
	Status   int32
}

// NewUser builds a user ensuring required invariants.
func NewUser(id uuid.UUID, username, email string, roles ...auth.Role) (*User, error) {
	user := &User{ID: id, Roles: roles}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if len(user.Roles) == 0 {
		user.Roles = []auth.Role{auth.RoleCustomer}
	}
	return user, nil
}

// SetUsername trims and validates the username.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	u.Username = username
	return nil
}

// SetEmail validates the optional email field.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// HasRole reports membership in the user's role set.
func (u *User) HasRole(role auth.Role) bool {
	for _, candidate := range u.Roles {
		if candidate == role {
			return true
		}
	}
	return false
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetUsername(u.Username); err != nil {
		return err
	}
	return u.SetEmail(u.Email)
}
