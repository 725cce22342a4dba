package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/librarylite/internal/dbx"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/books"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/users"
)

type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Books(db dbx.DBTX) books.Repository {
	return books.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, dbx.DialectSQLite)
}
