package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/logging"
	"github.com/google/uuid"
)

// MaxCommentLength is the longest review comment accepted, in characters.
const MaxCommentLength = 1000

// ReviewInput is the review form.
type ReviewInput struct {
	BookingID   string
	RevieweeID  string
	EquipmentID string
	Rating      int
	Comment     string
}

// Validate checks the form without contacting the backend.
func (in ReviewInput) Validate() error {
	switch {
	case in.Rating < 1 || in.Rating > 5:
		return ErrInvalidRating
	case strings.TrimSpace(in.BookingID) == "":
		return ErrMissingBooking
	case strings.TrimSpace(in.RevieweeID) == "":
		return ErrMissingReviewee
	case utf8.RuneCountInString(in.Comment) > MaxCommentLength:
		return ErrCommentTooLong
	}
	return nil
}

// ReviewService submits post-rental reviews.
type ReviewService interface {
	Submit(ctx context.Context, in ReviewInput) (*models.Review, error)
}

type reviewService struct {
	session SessionReader
	reviews backend.Reviews
	log     logging.Logger
	now     func() time.Time
}

func NewReviewService(session SessionReader, reviews backend.Reviews, log logging.Logger) ReviewService {
	if log == nil {
		log = logging.Nop()
	}
	return &reviewService{session: session, reviews: reviews, log: log.With("module", "reviews"), now: time.Now}
}

// Submit validates the form, checks that the user may review and inserts
// the review. Invalid input never reaches the backend.
func (s *reviewService) Submit(ctx context.Context, in ReviewInput) (*models.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, role, err := currentUser(s.session)
	if err != nil {
		return nil, err
	}
	if !role.CanReview() {
		return nil, ErrForbidden
	}
	if user.ID == in.RevieweeID {
		return nil, ErrSelfReview
	}

	review := &models.Review{
		ID:          uuid.NewString(),
		BookingID:   strings.TrimSpace(in.BookingID),
		ReviewerID:  user.ID,
		RevieweeID:  strings.TrimSpace(in.RevieweeID),
		EquipmentID: strings.TrimSpace(in.EquipmentID),
		Rating:      in.Rating,
		Comment:     strings.TrimSpace(in.Comment),
		CreatedAt:   s.now(),
	}
	if err := s.reviews.InsertReview(ctx, review); err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	s.log.Info(ctx, "review submitted", "booking_id", review.BookingID, "rating", review.Rating)
	return review, nil
}
