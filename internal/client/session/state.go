package session

import "github.com/dmitrijs2005/heavyhire/internal/client/models"

// Phase is the coarse lifecycle position of the store.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseInitializing
	PhaseAnonymous
	PhaseProfilePending
	PhaseProfileLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseInitializing:
		return "initializing"
	case PhaseAnonymous:
		return "anonymous"
	case PhaseProfilePending:
		return "profile-pending"
	case PhaseProfileLoaded:
		return "profile-loaded"
	}
	return "unknown"
}

// State is an immutable snapshot of the store. The pointed-to values are
// shared between snapshots and must not be modified.
type State struct {
	User    *models.User
	Session *models.Session
	// Profile is nil until fetched, and stays nil when the user has no row.
	Profile *models.Profile
	// Role is models.RoleNone until fetched or when unassigned.
	Role models.Role
	// ProfileLoaded is set once a profile/role lookup for User completed.
	ProfileLoaded bool

	Loading     bool
	Initialized bool

	initializing bool
}

// Authenticated reports whether a session and its user are present.
func (s State) Authenticated() bool {
	return s.Session != nil && s.User != nil
}

func (s State) Phase() Phase {
	switch {
	case !s.Initialized && !s.initializing:
		return PhaseUninitialized
	case !s.Initialized:
		return PhaseInitializing
	case !s.Authenticated():
		return PhaseAnonymous
	case !s.ProfileLoaded:
		return PhaseProfilePending
	default:
		return PhaseProfileLoaded
	}
}

// Dashboard is where the current role lands.
func (s State) Dashboard() models.Dashboard {
	return models.DashboardFor(s.Role)
}

func (s *State) setSession(sess *models.Session) {
	if sess == nil {
		s.clear()
		return
	}
	if s.User == nil || s.User.ID != sess.User.ID {
		s.Profile = nil
		s.Role = models.RoleNone
		s.ProfileLoaded = false
	}
	s.Session = sess
	user := sess.User
	s.User = &user
}

// clear drops identity and the values derived from it together.
func (s *State) clear() {
	s.User = nil
	s.Session = nil
	s.Profile = nil
	s.Role = models.RoleNone
	s.ProfileLoaded = false
}
