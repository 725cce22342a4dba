// Package common contains shared constants and sentinel errors used across
// LibraryLite components.
package common

// SessionCookieName is the name of the HTTP cookie carrying the session token.
const SessionCookieName = "access_token"

// TokenScheme is prepended to the token stored in the session cookie.
const TokenScheme = "Bearer "
