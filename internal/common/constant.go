// Package common contains shared constants, sentinel errors and small
// helpers used across HeavyHire client components.
package common

// HTTP header names understood by the hosted backend.
const (
	// APIKeyHeaderName carries the project's public API key on every request.
	APIKeyHeaderName = "apikey"

	// AuthorizationHeaderName carries "Bearer <access token>".
	AuthorizationHeaderName = "Authorization"

	// PreferHeaderName controls the representation returned by row writes.
	PreferHeaderName = "Prefer"
)

// Keys of the local metadata table.
const (
	MetadataKeySession     = "session"
	MetadataKeySessionSalt = "session_salt"
)
