package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/librarylite/internal/common"
	"github.com/dmitrijs2005/librarylite/internal/dbx"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
)

// SQLiteRepository stores timestamps as unix seconds.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	createdAt := r.now().UTC().Truncate(time.Second)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		user.UserName, user.PasswordHash, createdAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ID = id
	user.CreatedAt = createdAt
	return user, nil
}

func (r *SQLiteRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	var (
		user      models.User
		createdAt int64
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, userName).
		Scan(&user.ID, &user.UserName, &user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &user, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
