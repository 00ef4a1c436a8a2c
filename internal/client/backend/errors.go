package backend

import "errors"

var (
	// ErrUnauthorized means the credentials or the access token were refused.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable means the backend could not be reached or failed (5xx).
	ErrUnavailable = errors.New("backend unavailable")
	// ErrRejected means the backend refused the request as invalid (4xx).
	ErrRejected = errors.New("request rejected")
	// ErrNoSession means an operation needed a session and there is none.
	ErrNoSession = errors.New("no active session")
)

// ErrNotFound means the targeted row does not exist.
var ErrNotFound = errors.New("not found")
