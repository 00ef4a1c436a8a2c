package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/logging"
	"github.com/google/uuid"
)

type BookingService interface {
	// History returns the status changes of a booking, oldest first.
	History(ctx context.Context, bookingID string) ([]models.BookingStatusLog, error)
	// SetStatus appends a status change. Only owners and admins may do so.
	SetStatus(ctx context.Context, bookingID, status, note string) (*models.BookingStatusLog, error)
}

type bookingService struct {
	session  SessionReader
	bookings backend.Bookings
	log      logging.Logger
	now      func() time.Time
}

func NewBookingService(session SessionReader, bookings backend.Bookings, log logging.Logger) BookingService {
	if log == nil {
		log = logging.Nop()
	}
	return &bookingService{session: session, bookings: bookings, log: log.With("module", "bookings"), now: time.Now}
}

// History logs fetch errors and returns an empty history for them.
func (s *bookingService) History(ctx context.Context, bookingID string) ([]models.BookingStatusLog, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, ErrMissingBooking
	}
	if _, _, err := currentUser(s.session); err != nil {
		return nil, err
	}

	logs, err := s.bookings.ListBookingStatusLogs(ctx, bookingID)
	if err != nil {
		s.log.Error(ctx, "status history fetch failed", "booking_id", bookingID, "error", err)
		return nil, nil
	}
	return logs, nil
}

func (s *bookingService) SetStatus(ctx context.Context, bookingID, status, note string) (*models.BookingStatusLog, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, ErrMissingBooking
	}
	st, err := models.ParseBookingStatus(status)
	if err != nil {
		return nil, err
	}

	user, role, err := currentUser(s.session)
	if err != nil {
		return nil, err
	}
	if !role.CanUpdateBookingStatus() {
		return nil, ErrForbidden
	}

	entry := &models.BookingStatusLog{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Status:    st,
		ChangedBy: user.ID,
		Note:      strings.TrimSpace(note),
		CreatedAt: s.now(),
	}
	if err := s.bookings.InsertBookingStatusLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("set booking status: %w", err)
	}

	s.log.Info(ctx, "booking status changed", "booking_id", bookingID, "status", string(st))
	return entry, nil
}
