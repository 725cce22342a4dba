// Package repotest provides migrated in-memory databases for tests.
package repotest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/librarylite/internal/dbx"
	"github.com/dmitrijs2005/librarylite/internal/server/migrations"
	"github.com/google/uuid"
)

// NewSQLiteDB opens a private in-memory SQLite database with the schema
// applied. It is closed when the test ends.
func NewSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, dialect, err := dbx.Open(ctx, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(ctx, db, dialect); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
