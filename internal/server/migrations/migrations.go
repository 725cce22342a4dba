// Package migrations embeds the goose SQL migrations, one directory per
// dialect, and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/librarylite/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Up applies every pending migration for dialect.
func Up(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	var gooseDialect goose.Dialect
	switch dialect {
	case dbx.DialectPostgres:
		gooseDialect = goose.DialectPostgres
	case dbx.DialectSQLite:
		gooseDialect = goose.DialectSQLite3
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	fsys, err := fs.Sub(Migrations, string(dialect))
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
