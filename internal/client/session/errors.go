package session

import "errors"

var (
	// ErrNotAuthenticated is returned by operations that need a signed-in user.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrRoleNotAllowed is returned when sign-up requests a role users cannot pick.
	ErrRoleNotAllowed = errors.New("role cannot be self-assigned")
)
