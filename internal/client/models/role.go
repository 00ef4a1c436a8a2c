// Package models defines the client-side data model of the HeavyHire
// marketplace: identities, sessions, profiles, roles and the rows shown in
// the dashboards.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the authorization category attached to a user.
type Role string

const (
	RoleNone       Role = ""
	RoleContractor Role = "contractor"
	RoleOwner      Role = "owner"
	RoleAdmin      Role = "admin"
)

// ErrInvalidRole is returned by ParseRole for values outside the enum.
var ErrInvalidRole = errors.New("invalid role")

// ParseRole converts s (case-insensitive) to a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return RoleNone, fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Valid reports whether r is one of contractor, owner or admin.
func (r Role) Valid() bool {
	switch r {
	case RoleContractor, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// rank follows the declaration order of the app_role enum.
func (r Role) rank() int {
	switch r {
	case RoleContractor:
		return 1
	case RoleOwner:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

// HighestRole returns the strongest of roles, or RoleNone when empty.
func HighestRole(roles ...Role) Role {
	best := RoleNone
	for _, r := range roles {
		if r.rank() > best.rank() {
			best = r
		}
	}
	return best
}

// SelfAssignable reports whether a user may request r at sign-up.
func (r Role) SelfAssignable() bool {
	return r == RoleContractor || r == RoleOwner
}

// CanReview reports whether r may leave reviews after a rental.
func (r Role) CanReview() bool {
	return r == RoleContractor || r == RoleOwner
}

// CanUpdateBookingStatus reports whether r may append booking status changes.
func (r Role) CanUpdateBookingStatus() bool {
	return r == RoleOwner || r == RoleAdmin
}

// CanViewReports reports whether r may open platform reports.
func (r Role) CanViewReports() bool {
	return r == RoleAdmin
}

// Dashboard describes the landing area of a role.
type Dashboard struct {
	Name string
	Path string
}

// DashboardFor returns the dashboard a user with role r lands on.
// Users without a role land on the public home page.
func DashboardFor(r Role) Dashboard {
	switch r {
	case RoleContractor:
		return Dashboard{Name: "Contractor dashboard", Path: "/dashboard/contractor"}
	case RoleOwner:
		return Dashboard{Name: "Owner dashboard", Path: "/dashboard/owner"}
	case RoleAdmin:
		return Dashboard{Name: "Admin console", Path: "/admin"}
	default:
		return Dashboard{Name: "Home", Path: "/"}
	}
}
