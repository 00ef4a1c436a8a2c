// Package sessions persists the auth session in the local metadata store,
// encrypted with AES-GCM under a key derived (argon2id) from the configured
// passphrase. The salt is generated on first use and kept next to the
// session.
package sessions
