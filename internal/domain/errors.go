package domain

import "errors"

// ErrValidation is returned when input fails business rule validation
// (missing required field, malformed date, non-https URL, closed signup).
// Handlers map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrNotFound is returned when the requested trip or request does not exist
// in the row store. Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrAuthorization is returned when the officer passcode is wrong or missing.
// Handlers map this to HTTP 403.
var ErrAuthorization = errors.New("not authorized")

// ErrRateLimited is returned when a client address has exhausted its failed
// passcode attempts and the lockout window has not elapsed.
// Handlers map this to HTTP 429.
var ErrRateLimited = errors.New("rate limited")

// ErrIntegration is returned for a non-tolerated failure from the token
// endpoint, the calendar API, or the row store. The wrapped message carries
// the upstream status and body for operator diagnosis. Handlers map this
// to HTTP 500.
var ErrIntegration = errors.New("integration error")

// ErrDataIntegrity is returned when a stored row violates an invariant the
// reader expects: an unrecognized enum value, a duplicate settings key, or
// a required column missing from a sheet. Handlers map this to HTTP 500.
var ErrDataIntegrity = errors.New("data integrity error")
