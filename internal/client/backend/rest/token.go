package rest

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// tokenResponse is the GoTrue token answer. Sign-up without auto-confirm
// returns the bare user, so its fields are accepted at the top level too.
type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`

	ID    string `json:"id"`
	Email string `json:"email"`
}

func (r *tokenResponse) session(now time.Time) (*models.Session, error) {
	if r.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", common.ErrInvalidToken)
	}

	s := &models.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
	}
	if r.User != nil {
		s.User = *r.User
	}

	switch {
	case r.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(r.ExpiresAt, 0)
	case r.ExpiresIn > 0:
		s.ExpiresAt = now.Add(time.Duration(r.ExpiresIn) * time.Second)
	}

	if s.ExpiresAt.IsZero() || s.User.ID == "" {
		sub, exp, err := tokenClaims(r.AccessToken)
		if err != nil {
			return nil, err
		}
		if s.User.ID == "" {
			s.User.ID = sub
		}
		if s.ExpiresAt.IsZero() {
			s.ExpiresAt = exp
		}
	}
	if s.TokenType == "" {
		s.TokenType = "bearer"
	}
	return s, nil
}

// tokenClaims reads sub and exp from an access token without verifying
// its signature; the signing key stays with the backend.
func tokenClaims(token string) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return claims.Subject, exp, nil
}
