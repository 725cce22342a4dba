package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/librarylite/internal/common"
	"github.com/dmitrijs2005/librarylite/internal/dbx"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, author, description, year, created_at, updated_at
		 FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Book, 0)
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Year, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Book, error) {
	query :=
		`SELECT id, title, author, description, year, created_at, updated_at
		 FROM books WHERE id = $1
		 `

	b := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Year, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	query :=
		`INSERT INTO books (title, author, description, year)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, book.Title, book.Author, book.Description, book.Year).
		Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	query :=
		`UPDATE books SET title = $1, author = $2, description = $3, year = $4, updated_at = now()
		 WHERE id = $5
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, book.Title, book.Author, book.Description, book.Year, book.ID).
		Scan(&book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
