// Package services contains the client's form and view logic: review
// submission, the wallet view, booking status history and avatar upload.
// Every service reads the signed-in user from the session store; none of
// them touches the store's state directly.
package services

import (
	"context"

	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/client/session"
)

// SessionReader exposes the current session state.
type SessionReader interface {
	Snapshot() session.State
}

// ProfileWriter is a SessionReader that can also update the profile.
type ProfileWriter interface {
	SessionReader
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) error
}

var _ ProfileWriter = (*session.Store)(nil)

// currentUser returns the signed-in user and role, or ErrNotAuthenticated.
func currentUser(s SessionReader) (*models.User, models.Role, error) {
	st := s.Snapshot()
	if !st.Authenticated() {
		return nil, models.RoleNone, session.ErrNotAuthenticated
	}
	return st.User, st.Role, nil
}
