// Package client talks to the vibejournal backend over HTTP.
//
// # Overview
//
//  1. Requester: the authenticated request helper. It injects the stored
//     bearer token, defaults the body type to JSON, deletes the token and
//     returns ErrSessionExpired on 401, and returns a *RateLimitError on 429.
//     Everything else is handed back untouched.
//  2. Client / HTTPClient: typed wrappers for each backend endpoint
//     (auth, chat, vault, insights, network feed, billing).
//
// # Error Handling
//
// Sentinel errors are matched with errors.Is: ErrUnavailable,
// ErrSessionExpired, ErrRateLimited, ErrInvalidCredentials,
// ErrEmailNotVerified. Use errors.As for *RateLimitError (retry delay) and
// *APIError (status and backend detail).
//
// Nothing is retried.
package client
