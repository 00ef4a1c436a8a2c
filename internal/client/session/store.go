package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Config tunes a Store.
type Config struct {
	// RedirectTo is the post-confirmation target passed on sign-up.
	RedirectTo string
	// RequestTimeout bounds each backend call; zero means no bound.
	RequestTimeout time.Duration
}

type mutation struct {
	fn   func(*State)
	done chan struct{}
}

// Store is the session store. Create it with New; the zero value is not usable.
type Store struct {
	auth     backend.AuthProvider
	profiles backend.Profiles
	cfg      Config
	log      logging.Logger

	state atomic.Pointer[State]

	ops      chan mutation
	stop     chan struct{}
	loopDone chan struct{}
	// watchers is owned by the loop goroutine.
	watchers map[uint64]chan State
	nextID   atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc

	initOnce sync.Once
	initDone chan struct{}

	mu           sync.Mutex
	closed       bool
	unsubscribe  func()
	listenerDone chan struct{}

	fetches   sync.WaitGroup
	closeOnce sync.Once
}

// New builds a Store and starts its mutation loop.
func New(auth backend.AuthProvider, profiles backend.Profiles, cfg Config, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		auth:     auth,
		profiles: profiles,
		cfg:      cfg,
		log:      log.With("module", "session"),
		ops:      make(chan mutation),
		stop:     make(chan struct{}),
		loopDone: make(chan struct{}),
		watchers: make(map[uint64]chan State),
		ctx:      ctx,
		cancel:   cancel,
		initDone: make(chan struct{}),
	}
	s.state.Store(&State{Loading: true})
	go s.loop()
	return s
}

func (s *Store) loop() {
	defer close(s.loopDone)
	for {
		select {
		case m := <-s.ops:
			next := *s.state.Load()
			m.fn(&next)
			s.state.Store(&next)
			for _, w := range s.watchers {
				// keep only the latest snapshot for slow readers
				select {
				case <-w:
				default:
				}
				w <- next
			}
			close(m.done)
		case <-s.stop:
			for id, w := range s.watchers {
				close(w)
				delete(s.watchers, id)
			}
			return
		}
	}
}

// apply runs fn on the owning goroutine and waits until the result is
// published. After Close it does nothing.
func (s *Store) apply(fn func(*State)) {
	m := mutation{fn: fn, done: make(chan struct{})}
	select {
	case s.ops <- m:
	case <-s.loopDone:
		return
	}
	select {
	case <-m.done:
	case <-s.loopDone:
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	return *s.state.Load()
}

// Ready is closed once the first initialization has finished.
func (s *Store) Ready() <-chan struct{} {
	return s.initDone
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.RequestTimeout)
}

// Initialize subscribes to auth-state changes and loads the current session.
// It runs once per Store; concurrent and later callers block until that
// first run has finished. A failure to load the session is logged and still
// leaves the store initialized (and anonymous).
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		defer close(s.initDone)
		s.initialize(ctx)
	})
}

func (s *Store) initialize(ctx context.Context) {
	s.apply(func(st *State) {
		st.initializing = true
		st.Loading = true
	})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	events, unsubscribe := s.auth.Subscribe(s.ctx)
	s.unsubscribe = unsubscribe
	s.listenerDone = make(chan struct{})
	go s.listen(events, s.listenerDone)
	s.mu.Unlock()

	cctx, cancel := s.withTimeout(ctx)
	sess, err := s.auth.GetSession(cctx)
	cancel()
	if err != nil {
		s.log.Error(ctx, "initial session lookup failed", "error", err)
	}

	s.apply(func(st *State) {
		if err == nil {
			st.setSession(sess)
		}
		st.Loading = false
		st.Initialized = true
		st.initializing = false
	})

	if err == nil && sess != nil {
		s.FetchProfile(ctx)
	}
	s.log.Debug(ctx, "session store initialized", "phase", s.Snapshot().Phase().String())
}

func (s *Store) listen(events <-chan backend.AuthEvent, done chan struct{}) {
	defer close(done)
	for ev := range events {
		s.handleEvent(ev)
	}
}

func (s *Store) handleEvent(ev backend.AuthEvent) {
	s.log.Debug(s.ctx, "auth event", "type", string(ev.Type))

	if ev.Session == nil {
		s.apply(func(st *State) { st.clear() })
		return
	}

	s.apply(func(st *State) { st.setSession(ev.Session) })

	// the lookup must not run on the listener goroutine
	s.fetches.Add(1)
	go func() {
		defer s.fetches.Done()
		s.FetchProfile(s.ctx)
	}()
}

// SignIn verifies the credentials with the auth provider.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	s.apply(func(st *State) { st.Loading = true })

	cctx, cancel := s.withTimeout(ctx)
	sess, err := s.auth.SignInWithPassword(cctx, email, password)
	cancel()

	s.apply(func(st *State) {
		if err == nil && sess != nil {
			st.setSession(sess)
		}
		st.Loading = false
	})
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	if sess != nil {
		s.log.Info(ctx, "signed in", "user_id", sess.User.ID)
	}
	return nil
}

// SignUp registers a new identity carrying the full name and role as
// metadata. Only self-assignable roles are accepted; anything else fails
// before the provider is contacted.
func (s *Store) SignUp(ctx context.Context, req models.SignUpRequest) error {
	if !req.Role.SelfAssignable() {
		return fmt.Errorf("sign up as %q: %w", req.Role, ErrRoleNotAllowed)
	}

	s.apply(func(st *State) { st.Loading = true })

	cctx, cancel := s.withTimeout(ctx)
	sess, err := s.auth.SignUp(cctx, backend.SignUpParams{
		Email:      req.Email,
		Password:   req.Password,
		RedirectTo: s.cfg.RedirectTo,
		Data:       models.UserMetadata{FullName: req.FullName, Role: req.Role},
	})
	cancel()

	s.apply(func(st *State) {
		if err == nil && sess != nil {
			st.setSession(sess)
		}
		st.Loading = false
	})
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	s.log.Info(ctx, "signed up", "email", req.Email, "confirmed", sess != nil)
	return nil
}

// SignOut ends the session. Local state is cleared even when the provider
// call fails; that failure is still returned.
func (s *Store) SignOut(ctx context.Context) error {
	s.apply(func(st *State) { st.Loading = true })

	cctx, cancel := s.withTimeout(ctx)
	err := s.auth.SignOut(cctx)
	cancel()

	s.apply(func(st *State) {
		st.clear()
		st.Loading = false
	})
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// FetchProfile loads the profile and role of the signed-in user. A missing
// row leaves the value empty. Errors are logged and the previous values
// kept. A result for a user who is no longer signed in is dropped.
func (s *Store) FetchProfile(ctx context.Context) {
	st := s.Snapshot()
	if st.User == nil {
		return
	}
	userID := st.User.ID

	cctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		profile *models.Profile
		role    models.Role
	)
	g, gctx := errgroup.WithContext(cctx)
	g.Go(func() error {
		p, err := s.profiles.GetProfile(gctx, userID)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		r, err := s.profiles.GetRole(gctx, userID)
		if err != nil {
			return fmt.Errorf("get role: %w", err)
		}
		role = r
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "profile fetch failed", "user_id", userID, "error", err)
		return
	}

	s.apply(func(st *State) {
		if st.User == nil || st.User.ID != userID {
			return
		}
		st.Profile = profile
		st.Role = role
		st.ProfileLoaded = true
	})
}

// UpdateProfile writes a partial update to the signed-in user's profile and
// then reloads it.
func (s *Store) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	st := s.Snapshot()
	if st.User == nil {
		return ErrNotAuthenticated
	}

	cctx, cancel := s.withTimeout(ctx)
	err := s.profiles.UpdateProfile(cctx, st.User.ID, update)
	cancel()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	s.FetchProfile(ctx)
	return nil
}

// Watch streams snapshots, starting with the current one. Readers that fall
// behind only see the latest state. The channel is closed by the returned
// cancel function, by ctx, or by Close.
func (s *Store) Watch(ctx context.Context) (<-chan State, func()) {
	id := s.nextID.Add(1)
	ch := make(chan State, 1)

	registered := false
	s.apply(func(*State) {
		s.watchers[id] = ch
		registered = true
	})
	if !registered {
		close(ch)
		return ch, func() {}
	}

	var once sync.Once
	stopped := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			close(stopped)
			s.apply(func(*State) {
				if w, ok := s.watchers[id]; ok {
					delete(s.watchers, id)
					close(w)
				}
			})
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-stopped:
		case <-s.loopDone:
		}
	}()

	return ch, cancel
}

// Close unsubscribes from the provider, waits for background profile
// lookups and stops the store. It is safe to call more than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.cancel()

		s.mu.Lock()
		s.closed = true
		unsubscribe, listenerDone := s.unsubscribe, s.listenerDone
		s.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
			<-listenerDone
		}
		s.fetches.Wait()

		close(s.stop)
		<-s.loopDone
	})
}

// Use initializes store on first use and returns its state.
func Use(ctx context.Context, store *Store) State {
	if !store.Snapshot().Initialized {
		store.Initialize(ctx)
	}
	return store.Snapshot()
}
