// Package session carries the session token between requests in a cookie
// and resolves it back to an account.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/librarylite/internal/common"
)

// Cookies writes and clears the session cookie.
type Cookies struct {
	Secure   bool
	SameSite http.SameSite
	Path     string
}

func NewCookies(secure bool) *Cookies {
	return &Cookies{Secure: secure, SameSite: http.SameSiteLaxMode, Path: "/"}
}

// Set attaches token to the response. The cookie expires together with
// the token.
func (c *Cookies) Set(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    common.TokenScheme + token,
		Path:     c.Path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// Clear instructs the client to drop the session cookie.
func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     c.Path,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// TokenFromRequest returns the token stored in the session cookie, without
// the scheme prefix. A cookie written without the prefix is accepted as is.
func TokenFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(common.SessionCookieName)
	if err != nil {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(c.Value, common.TokenScheme))
	if token == "" {
		return "", false
	}
	return token, true
}
