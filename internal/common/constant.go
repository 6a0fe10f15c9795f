// Package common contains shared constants and sentinel errors used across
// vibejournal client components.
package common

import "time"

// AuthorizationHeaderName is the HTTP header carrying the bearer credential
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the credential inside the Authorization header.
const BearerScheme = "Bearer"

// RequestIDHeaderName tags every outbound request with a unique id.
const RequestIDHeaderName = "X-Request-ID"

// DefaultRetryAfter is used when a rate-limited response carries no usable
// Retry-After header.
const DefaultRetryAfter = 60 * time.Second

// ContentTypeJSON is the default request body type.
const ContentTypeJSON = "application/json"
