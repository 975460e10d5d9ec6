package models

import (
	"fmt"
	"time"
)

// Role is the role a user holds inside their organisation.
// There are exactly two roles; the zero value is not a valid role.
type Role uint8

const (
	// RoleMember builds their own lists and manages a personal catalog.
	RoleMember Role = iota + 1
	// RoleAdmin manages the organisation catalog, prices lists and records payments.
	RoleAdmin
)

// String returns the persisted form of the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleMember:
		return "member"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// Valid reports whether r is one of the two defined roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// ParseRole converts the persisted form back into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "admin":
		return RoleAdmin, nil
	case "member":
		return RoleMember, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

// UserProfile links an account to its organisation and role.
// Every account has exactly one profile; both live in the same row.
type UserProfile struct {
	// UserID is the unique identifier for the user (UUID format).
	UserID string

	// Username is the login name (unique across the system).
	Username string

	// Email is optional contact information.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// It never leaves the auth and storage packages.
	PasswordHash string

	// OrganisationID is the organisation the user belongs to.
	OrganisationID string

	// Role is the user's role within the organisation.
	Role Role

	// FirstLogin is true until the user has signed in once.
	FirstLogin bool

	// CreatedAt is when the account was created.
	CreatedAt time.Time
}

// Principal is an authenticated identity together with its resolved role
// and organisation. It is rebuilt from the stored profile on every request.
type Principal struct {
	UserID         string
	Username       string
	OrganisationID string
	Role           Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Resolved reports whether the principal carries a user, an organisation
// and a valid role.
func (p Principal) Resolved() bool {
	return p.UserID != "" && p.OrganisationID != "" && p.Role.Valid()
}

// PrincipalFor builds the principal view of a profile.
func PrincipalFor(profile *UserProfile) Principal {
	return Principal{
		UserID:         profile.UserID,
		Username:       profile.Username,
		OrganisationID: profile.OrganisationID,
		Role:           profile.Role,
	}
}
