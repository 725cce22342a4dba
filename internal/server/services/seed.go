package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/librarylite/internal/dbx"
	"github.com/dmitrijs2005/librarylite/internal/logging"
	"github.com/dmitrijs2005/librarylite/internal/server/auth"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/repomanager"
)

// AdminAccount describes the account provisioned into an empty store.
// PasswordHash, when set, is stored as is and Password is ignored.
type AdminAccount struct {
	UserName     string
	Password     string
	PasswordHash string
}

func sampleBooks() []models.Book {
	str := func(s string) *string { return &s }
	year := func(y int) *int { return &y }

	return []models.Book{
		{
			Title:       "The Pragmatic Programmer",
			Author:      "Andrew Hunt, David Thomas",
			Year:        year(1999),
			Description: str("A classic book about software craftsmanship."),
		},
		{
			Title:       "Clean Code",
			Author:      "Robert C. Martin",
			Year:        year(2008),
			Description: str("A handbook of agile software craftsmanship."),
		},
		{
			Title:       "Design Patterns: Elements of Reusable OO Software",
			Author:      "Gamma, Helm, Johnson, Vlissides",
			Year:        year(1994),
			Description: str("The famous Gang of Four design patterns book."),
		},
	}
}

// Seeder fills an empty store with the administrator and the sample catalog.
type Seeder struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	log         logging.Logger
}

func NewSeeder(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, log logging.Logger) *Seeder {
	return &Seeder{db: db, repomanager: m, hasher: hasher, log: log.With("module", "seed")}
}

// Seed runs in a single transaction; existing users or books are left alone.
func (s *Seeder) Seed(ctx context.Context, admin AdminAccount) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.seedAdmin(ctx, tx, admin); err != nil {
			return err
		}
		return s.seedBooks(ctx, tx)
	})
}

func (s *Seeder) seedAdmin(ctx context.Context, tx dbx.DBTX, admin AdminAccount) error {
	repo := s.repomanager.Users(tx)

	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash := admin.PasswordHash
	if hash == "" {
		if admin.Password == "" {
			return errors.New("admin password or password hash must be set")
		}
		if hash, err = s.hasher.Hash(admin.Password); err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
	}

	if _, err := repo.Create(ctx, &models.User{UserName: admin.UserName, PasswordHash: hash}); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	s.log.Info(ctx, "administrator provisioned", "username", admin.UserName)
	return nil
}

func (s *Seeder) seedBooks(ctx context.Context, tx dbx.DBTX) error {
	repo := s.repomanager.Books(tx)

	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if n > 0 {
		s.log.Debug(ctx, "catalog not empty, skipping sample books")
		return nil
	}

	for _, b := range sampleBooks() {
		if _, err := repo.Create(ctx, &b); err != nil {
			return fmt.Errorf("create sample book: %w", err)
		}
	}
	s.log.Info(ctx, "sample books inserted", "count", len(sampleBooks()))
	return nil
}
