package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/librarylite/internal/common"
	"github.com/dmitrijs2005/librarylite/internal/logging"
	"github.com/dmitrijs2005/librarylite/internal/server/auth"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder struct {
	users map[string]*models.User
	err   error
	calls int
}

func (f *fakeFinder) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeRecorder struct {
	outcomes []string
}

func (r *fakeRecorder) AuthOutcome(operation, outcome string) {
	r.outcomes = append(r.outcomes, operation+":"+outcome)
}

func newCodec(t *testing.T, now time.Time) *auth.TokenCodec {
	t.Helper()
	codec, err := auth.NewTokenCodec(auth.TokenConfig{
		Secret: []byte("test-secret"),
		TTL:    time.Hour,
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)
	return codec
}

func requestWithToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: common.TokenScheme + token})
	}
	return req
}

func TestResolver(t *testing.T) {
	now := time.Now()
	codec := newCodec(t, now)
	admin := &models.User{ID: 1, UserName: "admin"}

	valid, err := codec.Issue("admin")
	require.NoError(t, err)
	gone, err := codec.Issue("deleted")
	require.NoError(t, err)
	expired, err := newCodec(t, now.Add(-2*time.Hour)).Issue("admin")
	require.NoError(t, err)
	forged := valid.Value[:len(valid.Value)-2] + "xx"

	tests := []struct {
		name       string
		token      string
		wantStatus Status
		wantUser   *models.User
	}{
		{name: "no cookie", wantStatus: StatusAbsent},
		{name: "valid token", token: valid.Value, wantStatus: StatusAuthenticated, wantUser: admin},
		{name: "expired token", token: expired.Value, wantStatus: StatusInvalid},
		{name: "forged signature", token: forged, wantStatus: StatusInvalid},
		{name: "garbage", token: "not-a-token", wantStatus: StatusInvalid},
		{name: "subject gone", token: gone.Value, wantStatus: StatusInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			r := NewResolver(codec, &fakeFinder{users: map[string]*models.User{"admin": admin}}, logging.Nop(), rec)

			res, err := r.resolve(requestWithToken(tt.token))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantUser, res.User)
			assert.Equal(t, []string{"resolve:" + tt.wantStatus.String()}, rec.outcomes)

			user, err := r.Required(requestWithToken(tt.token))
			if tt.wantUser != nil {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUser, user)
			} else {
				assert.ErrorIs(t, err, common.ErrUnauthenticated)
				assert.Nil(t, user)
			}

			user, err = r.Optional(requestWithToken(tt.token))
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user)
		})
	}
}

func TestResolver_StoreFailureIsInternal(t *testing.T) {
	codec := newCodec(t, time.Now())
	tok, err := codec.Issue("admin")
	require.NoError(t, err)

	rec := &fakeRecorder{}
	r := NewResolver(codec, &fakeFinder{err: errors.New("connection refused")}, logging.Nop(), rec)

	_, err = r.Required(requestWithToken(tok.Value))
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.NotErrorIs(t, err, common.ErrUnauthenticated)

	_, err = r.Optional(requestWithToken(tok.Value))
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.Equal(t, []string{"resolve:error", "resolve:error"}, rec.outcomes)
}

func TestResolver_InvalidTokenSkipsStore(t *testing.T) {
	finder := &fakeFinder{}
	r := NewResolver(newCodec(t, time.Now()), finder, logging.Nop(), nil)

	user, err := r.Optional(requestWithToken("a.b.c"))
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Zero(t, finder.calls)
}

func TestResolver_UnprefixedCookie(t *testing.T) {
	codec := newCodec(t, time.Now())
	tok, err := codec.Issue("admin")
	require.NoError(t, err)

	admin := &models.User{ID: 1, UserName: "admin"}
	r := NewResolver(codec, &fakeFinder{users: map[string]*models.User{"admin": admin}}, logging.Nop(), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: tok.Value})

	user, err := r.Required(req)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.UserName)
}
