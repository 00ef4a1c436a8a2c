package backend

import (
	"context"

	"github.com/dmitrijs2005/heavyhire/internal/client/models"
)

// EventType names an auth-state transition.
type EventType string

const (
	EventSignedIn       EventType = "SIGNED_IN"
	EventSignedOut      EventType = "SIGNED_OUT"
	EventTokenRefreshed EventType = "TOKEN_REFRESHED"
	EventUserUpdated    EventType = "USER_UPDATED"
)

// AuthEvent is delivered to subscribers on every auth-state change.
// Session is nil for events that end the session.
type AuthEvent struct {
	Type    EventType
	Session *models.Session
}

// SignUpParams is what the provider needs to register an identity.
type SignUpParams struct {
	Email    string
	Password string
	// RedirectTo is where the confirmation e-mail sends the user.
	RedirectTo string
	// Data is stored as the identity's user metadata.
	Data models.UserMetadata
}

// AuthProvider is the identity side of the backend.
type AuthProvider interface {
	// SignInWithPassword verifies credentials and starts a session.
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
	// SignUp registers an identity. The returned session is nil when the
	// provider requires e-mail confirmation first.
	SignUp(ctx context.Context, params SignUpParams) (*models.Session, error)
	// SignOut invalidates the current session.
	SignOut(ctx context.Context) error
	// GetSession returns the current session or nil when signed out.
	GetSession(ctx context.Context) (*models.Session, error)
	// Subscribe registers a listener for auth-state changes. The returned
	// function unsubscribes and closes the channel; it is safe to call
	// more than once. The subscription also ends when ctx is done.
	Subscribe(ctx context.Context) (<-chan AuthEvent, func())
}
