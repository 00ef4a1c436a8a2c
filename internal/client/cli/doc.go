// Package cli provides the interactive HeavyHire command-line client.
//
// It drives the session store and the marketplace services from a REPL.
// Typical flow: restore the persisted session (if any), start a background
// session watcher, then execute user commands until "exit".
//
// Key features:
//   - Register / Login / Logout
//   - Who am I, role dashboard, profile view and edit, avatar upload
//   - Wallet balance and transactions
//   - Reviews, booking status history and status changes (role gated)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
