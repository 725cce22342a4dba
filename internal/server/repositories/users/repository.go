// Package users is the credential store: lookup and provisioning of accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/librarylite/internal/server/models"
)

// Repository persists accounts. GetUserByLogin returns common.ErrorNotFound
// for an unknown username; implementations are safe for concurrent use.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}
