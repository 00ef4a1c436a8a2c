package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/client/session"
)

// ---- session ----

type fakeSession struct {
	mu    sync.Mutex
	state session.State

	UpdateErr   error
	UpdateCount int
	LastUpdate  models.ProfileUpdate
}

func signedIn(id string, role models.Role) *fakeSession {
	return &fakeSession{state: session.State{
		User:          &models.User{ID: id, Email: id + "@example.com"},
		Session:       &models.Session{AccessToken: "tok-" + id, User: models.User{ID: id}},
		Role:          role,
		ProfileLoaded: true,
		Initialized:   true,
	}}
}

func anonymous() *fakeSession {
	return &fakeSession{state: session.State{Initialized: true}}
}

func (f *fakeSession) Snapshot() session.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeSession) UpdateProfile(_ context.Context, u models.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCount++
	f.LastUpdate = u
	return f.UpdateErr
}

// ---- rows ----

type fakeReviews struct {
	Err        error
	Calls      int
	LastReview *models.Review
}

func (f *fakeReviews) InsertReview(_ context.Context, r *models.Review) error {
	f.Calls++
	f.LastReview = r
	return f.Err
}

type fakeWallets struct {
	Wallet    *models.Wallet
	WalletErr error
	Txs       []models.Transaction
	TxErr     error

	mu           sync.Mutex
	LastWalletID string
	LastTxUserID string
}

func (f *fakeWallets) GetWallet(_ context.Context, userID string) (*models.Wallet, error) {
	f.mu.Lock()
	f.LastWalletID = userID
	f.mu.Unlock()
	return f.Wallet, f.WalletErr
}

func (f *fakeWallets) ListTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	f.mu.Lock()
	f.LastTxUserID = userID
	f.mu.Unlock()
	return f.Txs, f.TxErr
}

type fakeBookings struct {
	Logs    []models.BookingStatusLog
	ListErr error
	LastID  string

	InsertErr   error
	InsertCount int
	LastEntry   *models.BookingStatusLog
}

func (f *fakeBookings) ListBookingStatusLogs(_ context.Context, bookingID string) ([]models.BookingStatusLog, error) {
	f.LastID = bookingID
	return f.Logs, f.ListErr
}

func (f *fakeBookings) InsertBookingStatusLog(_ context.Context, e *models.BookingStatusLog) error {
	f.InsertCount++
	f.LastEntry = e
	return f.InsertErr
}

// ---- object store ----

type fakeObjects struct {
	URL      string
	Err      error
	LastKey  string
	LastType string
}

func (f *fakeObjects) PresignPut(_ context.Context, key, contentType string) (string, error) {
	f.LastKey = key
	f.LastType = contentType
	return f.URL, f.Err
}

func (f *fakeObjects) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}
