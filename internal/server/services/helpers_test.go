package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/librarylite/internal/dbx"
	"github.com/dmitrijs2005/librarylite/internal/server/auth"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/books"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasher(t *testing.T) *auth.PasswordHasher {
	t.Helper()
	h, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func newCodec(t *testing.T) *auth.TokenCodec {
	t.Helper()
	c, err := auth.NewTokenCodec(auth.TokenConfig{Secret: []byte("k"), TTL: 60 * time.Minute})
	require.NoError(t, err)
	return c
}

func newSQLiteStore(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	return repotest.NewSQLiteDB(t), repomanager.NewSQLiteRepositoryManager()
}

// fakeRepoManager hands out fixed repositories regardless of the DBTX.
type fakeRepoManager struct {
	u users.Repository
	b books.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Books(db dbx.DBTX) books.Repository           { return m.b }

type fakeUsersRepo struct {
	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo) Count(ctx context.Context) (int64, error) { return 0, nil }
