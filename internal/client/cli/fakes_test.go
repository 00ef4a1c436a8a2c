package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/client/services"
	"github.com/dmitrijs2005/heavyhire/internal/client/session"
)

// ------------ session store ------------

type fakeStore struct {
	st session.State

	initCalls int

	SignInErr    error
	LastEmail    string
	LastPassword string
	SignInRole   models.Role

	SignUpErr     error
	SignUpConfirm bool
	LastSignUp    models.SignUpRequest

	SignOutErr   error
	SignOutCalls int

	UpdateErr   error
	UpdateCalls int
	LastUpdate  models.ProfileUpdate

	watch chan session.State
}

func signedInState(role models.Role) session.State {
	return session.State{
		User:          &models.User{ID: "u1", Email: "olga@example.com"},
		Session:       &models.Session{AccessToken: "tok", User: models.User{ID: "u1"}},
		Profile:       &models.Profile{ID: "u1", FullName: "Olga Owner", Location: "Riga"},
		Role:          role,
		ProfileLoaded: true,
		Initialized:   true,
	}
}

func (f *fakeStore) Initialize(context.Context) {
	f.initCalls++
	f.st.Initialized = true
}

func (f *fakeStore) Snapshot() session.State { return f.st }

func (f *fakeStore) SignIn(_ context.Context, email, password string) error {
	f.LastEmail, f.LastPassword = email, password
	if f.SignInErr != nil {
		return f.SignInErr
	}
	f.st = signedInState(f.SignInRole)
	return nil
}

func (f *fakeStore) SignUp(_ context.Context, req models.SignUpRequest) error {
	f.LastSignUp = req
	if f.SignUpErr != nil {
		return f.SignUpErr
	}
	if !f.SignUpConfirm {
		f.st = signedInState(req.Role)
	}
	return nil
}

func (f *fakeStore) SignOut(context.Context) error {
	f.SignOutCalls++
	f.st = session.State{Initialized: true}
	return f.SignOutErr
}

func (f *fakeStore) UpdateProfile(_ context.Context, u models.ProfileUpdate) error {
	f.UpdateCalls++
	f.LastUpdate = u
	return f.UpdateErr
}

func (f *fakeStore) Watch(ctx context.Context) (<-chan session.State, func()) {
	if f.watch == nil {
		f.watch = make(chan session.State)
	}
	return f.watch, func() {}
}

// ------------ services ------------

type fakeReviews struct {
	Err       error
	Calls     int
	LastInput services.ReviewInput
}

func (f *fakeReviews) Submit(_ context.Context, in services.ReviewInput) (*models.Review, error) {
	f.Calls++
	f.LastInput = in
	if f.Err != nil {
		return nil, f.Err
	}
	return &models.Review{ID: "r1", BookingID: in.BookingID, Rating: in.Rating}, nil
}

type fakeWallet struct {
	View services.WalletView
	Err  error
}

func (f *fakeWallet) Load(context.Context) (services.WalletView, error) { return f.View, f.Err }

type fakeBookings struct {
	Logs        []models.BookingStatusLog
	HistoryErr  error
	LastHistory string

	SetErr     error
	LastID     string
	LastStatus string
	LastNote   string
}

func (f *fakeBookings) History(_ context.Context, id string) ([]models.BookingStatusLog, error) {
	f.LastHistory = id
	return f.Logs, f.HistoryErr
}

func (f *fakeBookings) SetStatus(_ context.Context, id, status, note string) (*models.BookingStatusLog, error) {
	f.LastID, f.LastStatus, f.LastNote = id, status, note
	if f.SetErr != nil {
		return nil, f.SetErr
	}
	return &models.BookingStatusLog{BookingID: id, Status: models.BookingStatus(status)}, nil
}

type fakeAvatars struct {
	Err      error
	LastPath string
}

func (f *fakeAvatars) Upload(_ context.Context, path string) (string, error) {
	f.LastPath = path
	return "https://cdn.example.com/a.png", f.Err
}

// ------------ helpers ------------

// readerFromLines scripts one answer per line; every answer, including a
// trailing empty one, ends with a newline.
func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 {
		return bufio.NewReader(strings.NewReader(""))
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

type testApp struct {
	*App
	store    *fakeStore
	reviews  *fakeReviews
	wallet   *fakeWallet
	bookings *fakeBookings
	avatars  *fakeAvatars
	buf      *bytes.Buffer
}

func newTestApp(t *testing.T, st session.State, lines ...string) *testApp {
	t.Helper()
	ta := &testApp{
		store:    &fakeStore{st: st},
		reviews:  &fakeReviews{},
		wallet:   &fakeWallet{},
		bookings: &fakeBookings{},
		avatars:  &fakeAvatars{},
		buf:      &bytes.Buffer{},
	}
	ta.App = NewApp(Deps{
		Session:  ta.store,
		Reviews:  ta.reviews,
		Wallet:   ta.wallet,
		Bookings: ta.bookings,
		Avatars:  ta.avatars,
	}, strings.NewReader(""), ta.buf)
	ta.App.reader = readerFromLines(lines...)
	return ta
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func bufioReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
