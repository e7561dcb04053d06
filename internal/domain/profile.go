package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role explicit authorization role of a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a role string
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// IsAdmin returns true for administrators
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Profile a user known to the service. The role is assigned explicitly
// by an administrator.
type Profile struct {
	ID        uuid.UUID
	Email     string
	FirstName *string
	LastName  *string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
