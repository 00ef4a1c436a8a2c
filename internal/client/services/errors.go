package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/heavyhire/internal/common"
)

var (
	ErrInvalidRating   = fmt.Errorf("%w: rating must be between 1 and 5", common.ErrorValidation)
	ErrMissingBooking  = fmt.Errorf("%w: booking id is required", common.ErrorValidation)
	ErrMissingReviewee = fmt.Errorf("%w: reviewee id is required", common.ErrorValidation)
	ErrCommentTooLong  = fmt.Errorf("%w: comment is too long", common.ErrorValidation)
	ErrSelfReview      = fmt.Errorf("%w: users cannot review themselves", common.ErrorValidation)
	ErrUnsupportedType = fmt.Errorf("%w: unsupported file type", common.ErrorValidation)

	// ErrForbidden means the signed-in user's role does not allow the action.
	ErrForbidden = errors.New("forbidden for this role")
)
