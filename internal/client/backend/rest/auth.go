package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/logging"
)

const (
	defaultRefreshMargin   = 60 * time.Second
	defaultRefreshTimeout  = 15 * time.Second
	autoRefreshRetryDelay  = 10 * time.Second
	// tokens this close to expiry are refreshed before use
	expirySkew             = 10 * time.Second
	subscriberBufferLength = 8
)

// SessionStorage persists the session between runs.
type SessionStorage interface {
	// Load returns the stored session or nil when there is none.
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}

// AuthOptions configures NewAuth.
type AuthOptions struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	// Storage is optional; without it the session lives in memory only.
	Storage SessionStorage
	// RefreshMargin is how long before expiry the token is refreshed.
	RefreshMargin time.Duration
	// RefreshTimeout bounds a background refresh call.
	RefreshTimeout time.Duration
	Logger         logging.Logger
}

// Auth is the identity client. It implements backend.AuthProvider and
// TokenSource.
type Auth struct {
	t              *transport
	storage        SessionStorage
	margin         time.Duration
	refreshTimeout time.Duration
	log            logging.Logger
	now            func() time.Time

	mu      sync.Mutex
	session *models.Session
	loaded  bool
	timer   *time.Timer
	closed  bool

	// refreshMu serialises refresh-token grants; a refresh token is single use.
	refreshMu sync.Mutex

	subsMu sync.Mutex
	subs   map[uint64]*subscriber
	nextID uint64
}

var _ backend.AuthProvider = (*Auth)(nil)

// NewAuth builds an Auth for the backend at opts.BaseURL.
func NewAuth(opts AuthOptions) (*Auth, error) {
	t, err := newTransport(opts.BaseURL, opts.APIKey, opts.HTTPClient)
	if err != nil {
		return nil, err
	}
	a := &Auth{
		t:              t,
		storage:        opts.Storage,
		margin:         opts.RefreshMargin,
		refreshTimeout: opts.RefreshTimeout,
		log:            opts.Logger,
		now:            time.Now,
		subs:           make(map[uint64]*subscriber),
	}
	if a.margin <= 0 {
		a.margin = defaultRefreshMargin
	}
	if a.refreshTimeout <= 0 {
		a.refreshTimeout = defaultRefreshTimeout
	}
	if a.log == nil {
		a.log = logging.Nop()
	}
	a.log = a.log.With("module", "auth")
	return a, nil
}

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshGrant struct {
	RefreshToken string `json:"refresh_token"`
}

type signUpBody struct {
	Email    string              `json:"email"`
	Password string              `json:"password"`
	Data     models.UserMetadata `json:"data"`
}

func (a *Auth) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	var resp tokenResponse
	err := a.t.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"password"}},
		body:   passwordGrant{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}

	s, err := resp.session(a.now())
	if err != nil {
		return nil, err
	}
	a.setSession(ctx, s, backend.EventSignedIn)
	return s, nil
}

func (a *Auth) SignUp(ctx context.Context, params backend.SignUpParams) (*models.Session, error) {
	var q url.Values
	if params.RedirectTo != "" {
		q = url.Values{"redirect_to": {params.RedirectTo}}
	}

	var resp tokenResponse
	err := a.t.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/signup",
		query:  q,
		body:   signUpBody{Email: params.Email, Password: params.Password, Data: params.Data},
	}, &resp)
	if err != nil {
		return nil, err
	}

	// e-mail confirmation pending: the identity exists, no session yet
	if resp.AccessToken == "" {
		a.log.Info(ctx, "sign-up awaiting confirmation", "email", params.Email)
		return nil, nil
	}

	s, err := resp.session(a.now())
	if err != nil {
		return nil, err
	}
	a.setSession(ctx, s, backend.EventSignedIn)
	return s, nil
}

// SignOut revokes the session on the backend and always forgets it
// locally. A token the backend no longer knows is not an error.
func (a *Auth) SignOut(ctx context.Context) error {
	s, err := a.current(ctx)
	if err != nil {
		a.log.Warn(ctx, "session load failed", "error", err)
	}

	var callErr error
	if s != nil {
		callErr = a.t.do(ctx, request{
			method: http.MethodPost,
			path:   "/auth/v1/logout",
			bearer: s.AccessToken,
		}, nil)
		if errors.Is(callErr, backend.ErrUnauthorized) || errors.Is(callErr, backend.ErrNotFound) {
			callErr = nil
		}
	}

	a.setSession(ctx, nil, backend.EventSignedOut)
	return callErr
}

// GetSession returns the current session, refreshing it first when the
// access token has expired. A refresh the backend refuses ends the session.
func (a *Auth) GetSession(ctx context.Context) (*models.Session, error) {
	return a.ensureFresh(ctx)
}

// AccessToken returns the bearer token for row requests, or "" when
// nobody is signed in.
func (a *Auth) AccessToken(ctx context.Context) (string, error) {
	s, err := a.ensureFresh(ctx)
	if err != nil || s == nil {
		return "", err
	}
	return s.AccessToken, nil
}

// Refresh exchanges the refresh token for a new session and emits
// TOKEN_REFRESHED. When the backend refuses the refresh token the session
// is cleared and SIGNED_OUT is emitted.
func (a *Auth) Refresh(ctx context.Context) (*models.Session, error) {
	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()

	s, err := a.current(ctx)
	if err != nil {
		return nil, err
	}
	return a.refreshLocked(ctx, s)
}

func (a *Auth) ensureFresh(ctx context.Context) (*models.Session, error) {
	s, err := a.current(ctx)
	if err != nil || s == nil || !s.ExpiresWithin(a.now(), expirySkew) {
		return s, err
	}

	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()

	// another caller may have refreshed while we waited
	s = a.snapshot()
	if s == nil || !s.ExpiresWithin(a.now(), expirySkew) {
		return s, nil
	}

	s, err = a.refreshLocked(ctx, s)
	if err != nil && isTerminal(err) {
		return nil, nil
	}
	return s, err
}

func (a *Auth) refreshLocked(ctx context.Context, s *models.Session) (*models.Session, error) {
	if s == nil || s.RefreshToken == "" {
		return nil, backend.ErrNoSession
	}

	var resp tokenResponse
	err := a.t.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"refresh_token"}},
		body:   refreshGrant{RefreshToken: s.RefreshToken},
	}, &resp)
	if err != nil {
		if isTerminal(err) {
			a.log.Warn(ctx, "refresh token rejected, signing out", "error", err)
			a.setSession(ctx, nil, backend.EventSignedOut)
		}
		return nil, fmt.Errorf("refresh session: %w", err)
	}

	ns, err := resp.session(a.now())
	if err != nil {
		return nil, err
	}
	if ns.User.ID == "" {
		ns.User = s.User
	}
	a.setSession(ctx, ns, backend.EventTokenRefreshed)
	return ns, nil
}

// current returns the in-memory session, loading it from storage once.
func (a *Auth) current(ctx context.Context) (*models.Session, error) {
	a.mu.Lock()
	if a.loaded || a.storage == nil {
		s := a.session
		a.loaded = true
		a.mu.Unlock()
		return s, nil
	}
	a.mu.Unlock()

	s, err := a.storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	// a sign-in may have raced the load
	if a.loaded {
		return a.session, nil
	}
	a.loaded = true
	a.session = s
	a.scheduleLocked()
	return s, nil
}

func (a *Auth) snapshot() *models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// setSession replaces the session, persists it and notifies subscribers.
func (a *Auth) setSession(ctx context.Context, s *models.Session, ev backend.EventType) {
	a.mu.Lock()
	a.session = s
	a.loaded = true
	a.scheduleLocked()
	a.mu.Unlock()

	if a.storage != nil {
		var err error
		if s == nil {
			err = a.storage.Clear(ctx)
		} else {
			err = a.storage.Save(ctx, s)
		}
		if err != nil {
			a.log.Error(ctx, "persist session failed", "error", err)
		}
	}

	a.emit(backend.AuthEvent{Type: ev, Session: s})
}

// scheduleLocked (re)arms the auto-refresh timer. Callers hold a.mu.
func (a *Auth) scheduleLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	s := a.session
	if a.closed || s == nil || s.RefreshToken == "" || s.ExpiresAt.IsZero() {
		return
	}
	d := s.ExpiresAt.Sub(a.now()) - a.margin
	if d < 0 {
		d = 0
	}
	a.timer = time.AfterFunc(d, func() { a.autoRefresh(s) })
}

func (a *Auth) autoRefresh(expected *models.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), a.refreshTimeout)
	defer cancel()

	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()

	// stale timer: the session changed after it was armed
	if a.snapshot() != expected {
		return
	}

	_, err := a.refreshLocked(ctx, expected)
	if err == nil || isTerminal(err) {
		return
	}

	a.log.Warn(ctx, "auto refresh failed, retrying", "error", err, "retry_in", autoRefreshRetryDelay)
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed || a.session != expected {
		return
	}
	a.timer = time.AfterFunc(autoRefreshRetryDelay, func() { a.autoRefresh(expected) })
}

// Close stops auto refresh and ends all subscriptions.
func (a *Auth) Close() {
	a.mu.Lock()
	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	a.subsMu.Lock()
	subs := make([]*subscriber, 0, len(a.subs))
	for _, s := range a.subs {
		subs = append(subs, s)
	}
	a.subsMu.Unlock()

	for _, s := range subs {
		s.cancel()
	}
}
