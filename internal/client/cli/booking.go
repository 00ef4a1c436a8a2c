package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/heavyhire/internal/client/services"
)

// argOrPrompt returns args[i] when present, otherwise asks for it.
func (a *App) argOrPrompt(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// Review collects the review form. Usage: review [booking-id].
func (a *App) Review(ctx context.Context, args []string) error {
	bookingID, err := a.argOrPrompt(args, 0, "Booking ID")
	if err != nil {
		return err
	}
	reviewee, err := getSimpleText(a.reader, "User ID being reviewed", a.out)
	if err != nil {
		return err
	}
	equipment, err := getSimpleText(a.reader, "Equipment ID (optional)", a.out)
	if err != nil {
		return err
	}
	ratingText, err := getSimpleText(a.reader, "Rating (1-5)", a.out)
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(strings.TrimSpace(ratingText))
	if err != nil {
		rating = 0
	}
	comment, err := getMultiline(a.reader, "Comment (optional)", a.out)
	if err != nil {
		return err
	}

	review, err := a.reviews.Submit(ctx, services.ReviewInput{
		BookingID:   bookingID,
		RevieweeID:  reviewee,
		EquipmentID: equipment,
		Rating:      rating,
		Comment:     comment,
	})
	if err != nil {
		return a.fail(ctx, "Review", err)
	}
	a.printf("Review %s submitted\n", review.ID)
	return nil
}

// BookingLog prints a booking's status history. Usage: bookinglog [booking-id].
func (a *App) BookingLog(ctx context.Context, args []string) error {
	bookingID, err := a.argOrPrompt(args, 0, "Booking ID")
	if err != nil {
		return err
	}

	logs, err := a.bookings.History(ctx, bookingID)
	if err != nil {
		return a.fail(ctx, "Booking history", err)
	}
	if len(logs) == 0 {
		a.println("No status changes")
		return nil
	}
	for _, l := range logs {
		line := l.CreatedAt.Local().Format("2006-01-02 15:04") + "  " + string(l.Status)
		if l.Note != "" {
			line += "  " + l.Note
		}
		a.println(line)
	}
	return nil
}

// SetStatus appends a booking status change. Usage: setstatus [booking-id] [status].
func (a *App) SetStatus(ctx context.Context, args []string) error {
	bookingID, err := a.argOrPrompt(args, 0, "Booking ID")
	if err != nil {
		return err
	}
	status, err := a.argOrPrompt(args, 1, "New status (pending/confirmed/active/completed/cancelled/disputed)")
	if err != nil {
		return err
	}
	note, err := getSimpleText(a.reader, "Note (optional)", a.out)
	if err != nil {
		return err
	}

	entry, err := a.bookings.SetStatus(ctx, bookingID, status, note)
	if err != nil {
		return a.fail(ctx, "Status change", err)
	}
	a.printf("Booking %s is now %s\n", entry.BookingID, entry.Status)
	return nil
}
