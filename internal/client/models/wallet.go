package models

import (
	"fmt"
	"math"
	"time"
)

// Wallet holds a user's balance. Amounts are in minor units (cents).
type Wallet struct {
	UserID string
	// Balance is the total amount in the wallet.
	Balance int64
	// HeldBalance is the part reserved by payment holds on active bookings.
	HeldBalance int64
	Currency    string
	UpdatedAt   time.Time
}

// Available is the balance that is not held.
func (w *Wallet) Available() int64 {
	return w.Balance - w.HeldBalance
}

// TransactionType classifies wallet movements.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionPayment    TransactionType = "payment"
	TransactionPayout     TransactionType = "payout"
	TransactionHold       TransactionType = "hold"
	TransactionRelease    TransactionType = "release"
	TransactionRefund     TransactionType = "refund"
)

// Transaction is one wallet movement.
type Transaction struct {
	ID          string
	UserID      string
	BookingID   string
	Type        TransactionType
	Amount      int64
	Status      string
	Description string
	CreatedAt   time.Time
}

// CentsFromDecimal converts a decimal amount (as stored in numeric columns)
// to minor units, rounding half away from zero.
func CentsFromDecimal(v float64) int64 {
	return int64(math.Round(v * 100))
}

// FormatCents renders minor units as "1234.56 EUR".
func FormatCents(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, currency)
}
