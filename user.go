package meadowlark

import (
	"fmt"
	"strings"
)

// A Role constrains what parts of the storefront a User reaches.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
)

var _ Enumerable = RoleCustomer

func (r Role) String() string { return string(r) }

func (r Role) Valid() error {
	switch r {
	case RoleCustomer, RoleEmployee:
		return nil
	default:
		return fmt.Errorf("%w: role %q", ErrNotValid, string(r))
	}
}

// ParseRoles splits a comma-separated list of roles, e.g. "customer,employee".
// Blank entries are dropped; surrounding whitespace is ignored.
func ParseRoles(csv string) []Role {
	roles := make([]Role, 0)
	for _, s := range strings.Split(csv, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		roles = append(roles, Role(s))
	}

	return roles
}

// A User is an identity authenticated through an external provider.
//
// The first time a provider vouches for an identity, a User is created with RoleCustomer.
type User struct {
	Model
	AuthID string `json:"-" gorm:"uniqueIndex"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// GetID exposes the User's ID to logging.
func (u User) GetID() uint { return u.ID }

// GetEmail exposes the User's email to logging.
func (u User) GetEmail() string { return u.Email }

// HasRole asserts whether the User holds any of the roles.
func (u User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}

	return false
}
