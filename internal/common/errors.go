package common

import "errors"

var (
	// ErrorValidation marks input rejected on the client before any backend
	// call is made.
	ErrorValidation = errors.New("validation error")

	// ErrInvalidToken is returned when an access token cannot be decoded.
	ErrInvalidToken = errors.New("invalid token")
)
