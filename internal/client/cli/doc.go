// Package cli provides the interactive vibejournal command-line client.
//
// It wires configuration, local storage, the backend client and the
// services into an interactive REPL. Each command follows the same flow:
// collect input, validate locally, make one request, then show the result
// or an alert through the shared Presenter.
//
// Key features:
//   - Register / Login / Logout and onboarding
//   - Voice and text conversation with spoken replies (talk, say, morning)
//   - Vault, insights and archiving of the current conversation
//   - Network feed, reactions and offers
//   - Subscription checkout and billing portal
//
// An expired session is handled in one place (App.report) for every
// command: the token is already gone, so the App returns to the logged-out
// state and asks the user to log in again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
