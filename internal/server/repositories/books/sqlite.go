package books

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

const sqliteSelectBook = `SELECT id, title, author, description, year, created_at, updated_at FROM books`

// deref turns an optional column value into a driver argument, nil for NULL.
func deref[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteBook(row rowScanner) (models.Book, error) {
	var (
		b                    models.Book
		createdAt, updatedAt int64
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Year, &createdAt, &updatedAt); err != nil {
		return b, err
	}
	b.CreatedAt = time.Unix(createdAt, 0).UTC()
	b.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return b, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, sqliteSelectBook+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Book, 0)
	for rows.Next() {
		b, err := scanSQLiteBook(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.Book, error) {
	b, err := scanSQLiteBook(r.db.QueryRowContext(ctx, sqliteSelectBook+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &b, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	now := r.now().UTC().Truncate(time.Second)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO books (title, author, description, year, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		book.Title, book.Author, deref(book.Description), deref(book.Year), now.Unix(), now.Unix())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	book.ID = id
	book.CreatedAt = now
	book.UpdatedAt = now
	return book, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	now := r.now().UTC().Truncate(time.Second)

	res, err := r.db.ExecContext(ctx,
		`UPDATE books SET title = ?, author = ?, description = ?, year = ?, updated_at = ? WHERE id = ?`,
		book.Title, book.Author, deref(book.Description), deref(book.Year), now.Unix(), book.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}

	return r.Get(ctx, book.ID)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
