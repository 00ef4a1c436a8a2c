// Package session holds the client's single source of truth for "who is
// logged in and what can they do".
//
// A Store is built once at bootstrap with New and torn down with Close.
// One goroutine owns the State and applies every mutation in order; readers
// get the last published snapshot without locking. Auth-state events from
// the provider arrive on a dedicated goroutine, and the profile/role lookup
// they trigger runs as a separate task whose result is posted back to the
// owning goroutine.
//
// Lifecycle:
//
//	uninitialized -> initializing -> anonymous | authenticated
//	authenticated: profile-pending -> profile-loaded
//
// Signing out returns the store to anonymous, never to uninitialized.
package session
