package models

import "time"

// User is an account that can log in. PasswordHash is an opaque bcrypt
// string and never leaves the server.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
