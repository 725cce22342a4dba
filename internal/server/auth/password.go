package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordLen is the bcrypt input limit. CompareHashAndPassword silently
// ignores anything past it.
const maxPasswordLen = 72

// PasswordHasher produces and checks bcrypt hashes. The hash string embeds
// the algorithm tag, cost and salt, so Verify needs nothing else.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordHasher{cost: cost}, nil
}

// Hash returns a freshly salted hash of password; two calls with the same
// input never return the same string. Passwords over 72 bytes are rejected.
func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether password matches hash. A malformed hash is a
// mismatch, not an error.
func (h *PasswordHasher) Verify(password, hash string) bool {
	if len(password) > maxPasswordLen {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
