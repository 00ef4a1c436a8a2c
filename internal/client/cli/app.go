package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/client/services"
	"github.com/dmitrijs2005/heavyhire/internal/client/session"
	"github.com/dmitrijs2005/heavyhire/internal/logging"
)

// SessionStore is the part of session.Store the CLI drives.
type SessionStore interface {
	Initialize(ctx context.Context)
	Snapshot() session.State
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, req models.SignUpRequest) error
	SignOut(ctx context.Context) error
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) error
	Watch(ctx context.Context) (<-chan session.State, func())
}

var _ SessionStore = (*session.Store)(nil)

// Deps are the collaborators of an App. Avatars may be nil when object
// storage is not configured.
type Deps struct {
	Session  SessionStore
	Reviews  services.ReviewService
	Wallet   services.WalletService
	Bookings services.BookingService
	Avatars  services.AvatarService
	Logger   logging.Logger
}

type App struct {
	session  SessionStore
	reviews  services.ReviewService
	wallet   services.WalletService
	bookings services.BookingService
	avatars  services.AvatarService
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(d Deps, in io.Reader, out io.Writer) *App {
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		session:  d.Session,
		reviews:  d.Reviews,
		wallet:   d.Wallet,
		bookings: d.Bookings,
		avatars:  d.Avatars,
		log:      log.With("module", "cli"),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

func (a *App) state() session.State {
	return a.session.Snapshot()
}

func (a *App) isLoggedIn() bool {
	return a.state().Authenticated()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// fail reports err to the user and returns it.
func (a *App) fail(ctx context.Context, action string, err error) error {
	a.log.Debug(ctx, action+" failed", "error", err)
	a.printf("%s failed: %v\n", action, err)
	return err
}

func (a *App) getStatus() string {
	st := a.state()
	if !st.Authenticated() {
		return "(guest)"
	}
	if st.Role == models.RoleNone {
		return fmt.Sprintf("(%s)", st.User.Email)
	}
	return fmt.Sprintf("(%s %s)", st.User.Email, st.Role)
}

// Run restores the session, starts the session watcher and blocks in the
// REPL until the user exits or in reaches EOF.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("Welcome to HeavyHire CLI (type 'help' for commands)")

	a.session.Initialize(ctx)
	if state := a.state(); state.Authenticated() {
		a.printf("Signed in as %s\n", state.User.Email)
	}

	go a.StartSessionWatcher(ctx)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// StartSessionWatcher logs every end of a session, including the ones the
// user did not ask for, such as a revoked refresh token. It returns when ctx
// is done or the store is closed.
func (a *App) StartSessionWatcher(ctx context.Context) {
	states, stop := a.session.Watch(ctx)
	defer stop()

	signedIn := ""
	for {
		select {
		case st, ok := <-states:
			if !ok {
				return
			}
			switch {
			case st.Authenticated():
				signedIn = st.User.ID
			case signedIn != "" && !st.Loading:
				a.log.Info(ctx, "session ended", "user_id", signedIn)
				signedIn = ""
			}
		case <-ctx.Done():
			return
		}
	}
}
