package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/librarylite/internal/dbx"
	"github.com/dmitrijs2005/librarylite/internal/server/migrations"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/books"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Books(db dbx.DBTX) books.Repository
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// New returns the RepositoryManager matching dialect.
func New(dialect dbx.Dialect) (RepositoryManager, error) {
	switch dialect {
	case dbx.DialectPostgres:
		return NewPostgresRepositoryManager(), nil
	case dbx.DialectSQLite:
		return NewSQLiteRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}
