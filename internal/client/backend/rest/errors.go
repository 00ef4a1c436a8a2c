package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Code    string
	Message string

	err error
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
}

// Unwrap exposes the backend sentinel matching Status.
func (e *APIError) Unwrap() error { return e.err }

// errorBody covers the GoTrue and PostgREST error shapes.
type errorBody struct {
	Code             json.RawMessage `json:"code"`
	ErrorCode        string          `json:"error_code"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
	Msg              string          `json:"msg"`
	Message          string          `json:"message"`
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}

	var b errorBody
	if err := json.Unmarshal(body, &b); err == nil {
		e.Code = firstNonEmpty(b.ErrorCode, b.Error, rawCode(b.Code))
		e.Message = firstNonEmpty(b.Message, b.Msg, b.ErrorDescription)
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.err = backend.ErrUnauthorized
	case status == http.StatusBadRequest && (e.Code == "invalid_grant" || e.Code == "invalid_credentials"):
		e.err = backend.ErrUnauthorized
	case status == http.StatusNotFound:
		e.err = backend.ErrNotFound
	case status >= 500:
		e.err = backend.ErrUnavailable
	default:
		e.err = backend.ErrRejected
	}
	return e
}

// rawCode renders PostgREST's string codes and GoTrue's numeric ones.
func rawCode(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.Itoa(n)
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// isTerminal reports whether err means the session can no longer be used.
func isTerminal(err error) bool {
	return errors.Is(err, backend.ErrUnauthorized) || errors.Is(err, backend.ErrRejected)
}
