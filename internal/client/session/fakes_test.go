package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
	"github.com/dmitrijs2005/heavyhire/internal/client/models"
)

/*************
 * Fake auth provider
 *************/

type fakeAuth struct {
	mu sync.Mutex

	// inputs captured
	LastEmail    string
	LastPassword string
	LastSignUp   *backend.SignUpParams

	// outputs preset
	current    *models.Session
	getErr     error
	signInErr  error
	signUpSess *models.Session
	signUpErr  error
	signOutErr error

	// users by e-mail for SignInWithPassword
	users map[string]*models.Session

	getCalls       int
	signInCalls    int
	signUpCalls    int
	signOutCalls   int
	subscribeCalls int
	unsubscribed   bool

	events    chan backend.AuthEvent
	closeOnce sync.Once
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{users: map[string]*models.Session{}}
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, password string) (*models.Session, error) {
	f.mu.Lock()
	f.signInCalls++
	f.LastEmail, f.LastPassword = email, password
	if f.signInErr != nil {
		err := f.signInErr
		f.mu.Unlock()
		return nil, err
	}
	s, ok := f.users[email]
	if !ok {
		f.mu.Unlock()
		return nil, backend.ErrUnauthorized
	}
	f.current = s
	f.mu.Unlock()

	f.emit(backend.AuthEvent{Type: backend.EventSignedIn, Session: s})
	return s, nil
}

func (f *fakeAuth) SignUp(_ context.Context, params backend.SignUpParams) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUpCalls++
	f.LastSignUp = &params
	return f.signUpSess, f.signUpErr
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.mu.Lock()
	f.signOutCalls++
	f.current = nil
	err := f.signOutErr
	f.mu.Unlock()

	f.emit(backend.AuthEvent{Type: backend.EventSignedOut})
	return err
}

func (f *fakeAuth) GetSession(context.Context) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	return f.current, f.getErr
}

func (f *fakeAuth) Subscribe(context.Context) (<-chan backend.AuthEvent, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribeCalls++
	f.events = make(chan backend.AuthEvent, 16)
	ch := f.events
	return ch, func() {
		f.closeOnce.Do(func() {
			f.mu.Lock()
			f.unsubscribed = true
			f.events = nil
			f.mu.Unlock()
			close(ch)
		})
	}
}

func (f *fakeAuth) emit(ev backend.AuthEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.events != nil {
		f.events <- ev
	}
}

func (f *fakeAuth) counts() (get, subscribe, signUp int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls, f.subscribeCalls, f.signUpCalls
}

/*************
 * Fake row storage
 *************/

type fakeProfiles struct {
	mu sync.Mutex

	LastUpdateID string
	LastUpdate   models.ProfileUpdate

	profiles map[string]*models.Profile
	roles    map[string]models.Role

	profileErr error
	roleErr    error
	updateErr  error

	// when set, GetProfile waits for it to be closed
	gate chan struct{}

	getCalls    int
	updateCalls int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: map[string]*models.Profile{}, roles: map[string]models.Role{}}
}

func (f *fakeProfiles) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	gate := f.gate
	f.getCalls++
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) GetRole(_ context.Context, userID string) (models.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roleErr != nil {
		return models.RoleNone, f.roleErr
	}
	return f.roles[userID], nil
}

func (f *fakeProfiles) UpdateProfile(_ context.Context, userID string, update models.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.LastUpdateID = userID
	f.LastUpdate = update
	if f.updateErr != nil {
		return f.updateErr
	}
	if p, ok := f.profiles[userID]; ok && update.FullName != nil {
		p.FullName = *update.FullName
	}
	return nil
}

func (f *fakeProfiles) updates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateCalls
}

func sessionFor(userID string) *models.Session {
	return &models.Session{
		AccessToken:  "access-" + userID,
		RefreshToken: "refresh-" + userID,
		User:         models.User{ID: userID, Email: userID + "@example.com"},
	}
}
