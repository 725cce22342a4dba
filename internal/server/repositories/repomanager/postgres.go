// Package repomanager vends dialect-specific repositories bound to a DBTX
// and applies the matching schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/librarylite/internal/dbx"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/books"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Books returns a books.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Books(db dbx.DBTX) books.Repository {
	return books.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, dbx.DialectPostgres)
}
