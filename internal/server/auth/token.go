// Package auth implements the credential primitives of the server: bcrypt
// password hashing and HS256 session tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/librarylite/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is what a session token asserts: who it was issued to and until when.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Token is a signed token string together with the claims it encodes.
type Token struct {
	Value  string
	Claims Claims
}

// TokenConfig is everything the codec needs; it is read once at construction.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	// Now overrides the clock, mostly for tests. Defaults to time.Now.
	Now func() time.Time
}

// TokenCodec issues and verifies HS256 JWTs.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(cfg TokenConfig) (*TokenCodec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}
	// expiry has second precision
	if cfg.TTL < time.Second {
		return nil, errors.New("token ttl must be at least one second")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	return &TokenCodec{secret: secret, ttl: cfg.TTL, now: now}, nil
}

// Issue signs a token for subject that expires one TTL from now.
func (c *TokenCodec) Issue(subject string) (*Token, error) {
	return issue(subject, c.secret, c.ttl, c.now())
}

// Verify returns the claims of a well-formed, correctly signed and unexpired
// token. Every other input yields common.ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	return verify(tokenString, c.secret, c.now)
}

// GenerateToken signs a token for subject valid for validityDuration from now.
// A non-positive duration yields a token that is already expired.
func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (*Token, error) {
	return issue(subject, secretKey, validityDuration, time.Now())
}

// ParseToken verifies tokenString against secretKey at the current time.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	return verify(tokenString, secretKey, time.Now)
}

func issue(subject string, secretKey []byte, ttl time.Duration, now time.Time) (*Token, error) {
	if subject == "" {
		return nil, errors.New("token subject must not be empty")
	}

	// JWT NumericDate has second precision
	issuedAt := now.Truncate(time.Second)
	expiresAt := now.Add(ttl).Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return nil, err
	}

	return &Token{
		Value:  tokenString,
		Claims: Claims{Subject: subject, ExpiresAt: expiresAt},
	}, nil
}

func verify(tokenString string, secretKey []byte, now func() time.Time) (*Claims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(now),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, common.ErrInvalidToken
	}

	return &Claims{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}
