package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/librarylite/internal/dbx"
	"github.com/dmitrijs2005/librarylite/internal/logging"
	"github.com/dmitrijs2005/librarylite/internal/server/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.DatabaseDSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	c.PasswordHashCost = bcrypt.MinCost
	c.HealthCheckInterval = 50 * time.Millisecond
	return c
}

func TestNewApp_SeedsAndRuns(t *testing.T) {
	ctx := context.Background()
	c := testConfig()

	db, dialect, err := dbx.Open(ctx, c.DatabaseDSN)
	require.NoError(t, err)

	app, err := newApp(ctx, c, logging.Nop(), db, dialect)
	require.NoError(t, err)

	var users, books int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users))
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&books))
	assert.Equal(t, 1, users)
	assert.Equal(t, 3, books)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		app.Run(runCtx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestNewApp_BadDSN(t *testing.T) {
	c := testConfig()
	c.DatabaseDSN = "postgres://nobody@127.0.0.1:1/none?connect_timeout=1"

	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}
