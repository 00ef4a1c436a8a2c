package backend

import (
	"context"

	"github.com/dmitrijs2005/heavyhire/internal/client/models"
)

// Profiles reads and updates the profiles and user_roles tables.
type Profiles interface {
	// GetProfile returns the profile with id userID, or nil if none exists.
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	// GetRole returns the role of userID, or models.RoleNone if unassigned.
	GetRole(ctx context.Context, userID string) (models.Role, error)
	// UpdateProfile applies a partial update to the profile row.
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error
}

// Wallets reads the wallets and transactions tables.
type Wallets interface {
	// GetWallet returns the wallet of userID, or nil if none exists.
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)
	// ListTransactions returns userID's transactions, newest first.
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
}

// Bookings reads and appends to the booking_status_logs table.
type Bookings interface {
	// ListBookingStatusLogs returns the history of bookingID, oldest first.
	ListBookingStatusLogs(ctx context.Context, bookingID string) ([]models.BookingStatusLog, error)
	InsertBookingStatusLog(ctx context.Context, entry *models.BookingStatusLog) error
}

// Reviews appends to the reviews table.
type Reviews interface {
	InsertReview(ctx context.Context, review *models.Review) error
}

// RowStore is the complete row-storage surface used by the client.
type RowStore interface {
	Profiles
	Wallets
	Bookings
	Reviews
}
