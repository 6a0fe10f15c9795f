// Package common defines shared constants and sentinel errors used across
// client layers of vibejournal. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Input checked on the client before any request is sent.
	ErrValidation = errors.New("validation error")

	// Token store errors.
	ErrNoToken = errors.New("no token stored")

	// Session state.
	ErrNotLoggedIn = errors.New("not logged in")
)
