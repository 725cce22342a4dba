package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/librarylite/internal/common"
	"github.com/dmitrijs2005/librarylite/internal/logging"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
)

// BookInput is the editable part of a book.
type BookInput struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description *string `json:"description,omitempty"`
	Year        *int    `json:"year,omitempty"`
}

func (in *BookInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			in.Description = nil
		} else {
			in.Description = &d
		}
	}
}

func (in BookInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Author, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Description, validation.Length(0, 500)),
		validation.Field(&in.Year, validation.Min(0), validation.Max(9999)),
	)
}

type BookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewBookService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *BookService {
	return &BookService{db: db, repomanager: m, log: log.With("module", "books")}
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	books, err := s.repomanager.Books(s.db).List(ctx)
	if err != nil {
		return nil, s.internal(ctx, "list books", err)
	}
	return books, nil
}

func (s *BookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	b, err := s.repomanager.Books(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, s.internal(ctx, "get book", err)
	}
	return b, nil
}

// Create validates in and stores it on behalf of user.
func (s *BookService) Create(ctx context.Context, user *models.User, in BookInput) (*models.Book, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, validationError(err)
	}

	b, err := s.repomanager.Books(s.db).Create(ctx, &models.Book{
		Title: in.Title, Author: in.Author, Description: in.Description, Year: in.Year,
	})
	if err != nil {
		return nil, s.internal(ctx, "create book", err)
	}

	s.log.Info(ctx, "book created", "id", b.ID, "username", user.UserName)
	return b, nil
}

func (s *BookService) Update(ctx context.Context, user *models.User, id int64, in BookInput) (*models.Book, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, validationError(err)
	}

	b, err := s.repomanager.Books(s.db).Update(ctx, &models.Book{
		ID: id, Title: in.Title, Author: in.Author, Description: in.Description, Year: in.Year,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, s.internal(ctx, "update book", err)
	}

	s.log.Info(ctx, "book updated", "id", id, "username", user.UserName)
	return b, nil
}

func (s *BookService) Delete(ctx context.Context, user *models.User, id int64) error {
	if err := s.repomanager.Books(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return s.internal(ctx, "delete book", err)
	}

	s.log.Info(ctx, "book deleted", "id", id, "username", user.UserName)
	return nil
}

func (s *BookService) internal(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}

// validationError keeps the per-field messages reachable through errors.As
// with a *validation.Errors target.
func validationError(err error) error {
	return fmt.Errorf("%w: %w", common.ErrorValidation, err)
}
