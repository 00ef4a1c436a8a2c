// Package rest talks to the hosted backend over HTTP.
//
// Auth is a GoTrue-compatible identity client: password sign-in, sign-up
// with metadata, sign-out, token refresh and an auth-event broadcaster that
// also refreshes the access token shortly before it expires. The session is
// optionally persisted through a SessionStorage.
//
// Rows is a PostgREST-compatible client for the row tables. It authorises
// each request with the access token of a TokenSource (normally Auth), and
// falls back to the public API key when nobody is signed in.
//
// HTTP failures are returned as *APIError values that wrap the sentinels of
// package backend.
package rest
