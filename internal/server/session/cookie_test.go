package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/librarylite/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookies_SetAndRead(t *testing.T) {
	c := NewCookies(true)
	expires := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	rec := httptest.NewRecorder()
	c.Set(rec, "abc.def.ghi", expires)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	got := cookies[0]
	assert.Equal(t, common.SessionCookieName, got.Name)
	assert.Equal(t, "Bearer abc.def.ghi", got.Value)
	assert.True(t, got.HttpOnly)
	assert.True(t, got.Secure)
	assert.Equal(t, http.SameSiteLaxMode, got.SameSite)
	assert.Equal(t, "/", got.Path)
	assert.True(t, got.Expires.Equal(expires))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(got)
	token, ok := TokenFromRequest(req)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestCookies_Clear(t *testing.T) {
	rec := httptest.NewRecorder()
	NewCookies(false).Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, common.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
		want   string
		wantOK bool
	}{
		{name: "no cookie"},
		{name: "prefixed", cookie: &http.Cookie{Name: common.SessionCookieName, Value: "Bearer tok"}, want: "tok", wantOK: true},
		{name: "missing prefix", cookie: &http.Cookie{Name: common.SessionCookieName, Value: "tok"}, want: "tok", wantOK: true},
		{name: "prefix only", cookie: &http.Cookie{Name: common.SessionCookieName, Value: "Bearer "}},
		{name: "empty", cookie: &http.Cookie{Name: common.SessionCookieName, Value: ""}},
		{name: "other cookie", cookie: &http.Cookie{Name: "theme", Value: "dark"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			got, ok := TokenFromRequest(req)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
