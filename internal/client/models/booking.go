package models

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a rental booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingDisputed  BookingStatus = "disputed"
)

// ParseBookingStatus converts s (case-insensitive) to a BookingStatus.
func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case BookingPending, BookingConfirmed, BookingActive, BookingCompleted, BookingCancelled, BookingDisputed:
		return st, nil
	}
	return "", fmt.Errorf("invalid booking status %q", s)
}

// BookingStatusLog is one entry of a booking's status history.
type BookingStatusLog struct {
	ID        string
	BookingID string
	Status    BookingStatus
	ChangedBy string
	Note      string
	CreatedAt time.Time
}

// Review is the feedback left after a rental.
type Review struct {
	ID          string
	BookingID   string
	ReviewerID  string
	RevieweeID  string
	EquipmentID string
	// Rating is 1..5.
	Rating    int
	Comment   string
	CreatedAt time.Time
}
