// Package backend defines the contracts between the HeavyHire client and
// the hosted backend-as-a-service.
//
// # Overview
//
// The package provides:
//  1. AuthProvider: password sign-in, sign-up with metadata and a redirect
//     target, sign-out, the current-session snapshot and a cancellable
//     stream of auth-state change events.
//  2. Row interfaces (Profiles, Wallets, Bookings, Reviews and the
//     aggregate RowStore) for the equality-filtered reads, inserts and
//     updates the client performs.
//
// Implementations live in sub-packages: rest (the hosted HTTP API) and
// postgres (direct database access with the same schema).
//
// # Error Handling
//
// Implementations wrap the sentinel errors below so callers can match with
// errors.Is: ErrUnauthorized, ErrUnavailable, ErrRejected, ErrNotFound and
// ErrNoSession.
// Lookups that find no row return a nil value and a nil error.
//
// # Concurrency & Contexts
//
// Implementations must be safe for concurrent use. All blocking calls take
// a context.Context and honour its cancellation.
package backend
