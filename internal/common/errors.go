// Package common defines shared constants and sentinel errors used across
// the server layers of LibraryLite. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Login errors. Unknown user and wrong password share this value.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Token errors (forged, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")

	// No usable identity where one is required.
	ErrUnauthenticated = errors.New("unauthenticated")
)
