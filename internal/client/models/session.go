package models

import "time"

// UserMetadata is the free-form payload stored with the identity at sign-up.
type UserMetadata struct {
	FullName string `json:"full_name,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// User is the identity record owned by the auth provider.
type User struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Metadata  UserMetadata `json:"user_metadata"`
	CreatedAt time.Time    `json:"created_at"`
}

// Session is the credential bundle issued by the auth provider.
// It is replaced wholesale on every auth-state change.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// Expired reports whether the access token is past its expiry at now.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}

// ExpiresWithin reports whether the access token expires within d of now.
func (s *Session) ExpiresWithin(now time.Time, d time.Duration) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(d).Before(s.ExpiresAt)
}

// SignUpRequest carries the sign-up form.
type SignUpRequest struct {
	Email    string
	Password string
	FullName string
	Role     Role
}
