// Package books stores catalog records.
package books

import (
	"context"

	"github.com/dmitrijs2005/librarylite/internal/server/models"
)

// Repository persists books. Get, Update and Delete return
// common.ErrorNotFound for an unknown id.
type Repository interface {
	List(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
