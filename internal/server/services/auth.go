// Package services contains server-side business logic. This file implements
// AuthService, which checks credentials and issues session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/librarylite/internal/common"
	"github.com/dmitrijs2005/librarylite/internal/logging"
	"github.com/dmitrijs2005/librarylite/internal/server/auth"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/repomanager"
)

// dummyPassword is hashed once so that a login for an unknown account pays
// the same bcrypt cost as a login with a wrong password.
const dummyPassword = "librarylite-timing-equalizer"

// AuthService provides authentication-related operations:
// - Authenticate: verify a username/password pair
// - Login: authenticate and mint a session token
// - CreateUser: provision an account with a hashed password
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenCodec
	dummyHash   string
	log         logging.Logger
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher,
	tokens *auth.TokenCodec, log logging.Logger) (*AuthService, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		dummyHash:   dummy,
		log:         log.With("module", "auth"),
	}, nil
}

// Authenticate returns the account for username when password matches.
// Unknown accounts and wrong passwords both yield
// common.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			s.log.Warn(ctx, "login failed", "username", username)
			return nil, common.ErrInvalidCredentials
		}
		s.log.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Warn(ctx, "login failed", "username", username)
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the pair and issues a session token for the account.
func (s *AuthService) Login(ctx context.Context, username, password string) (*auth.Token, *models.User, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, nil, err
	}

	token, err := s.tokens.Issue(user.UserName)
	if err != nil {
		s.log.Error(ctx, "token issue failed", "error", err)
		return nil, nil, common.ErrorInternal
	}

	s.log.Info(ctx, "login succeeded", "username", user.UserName)
	return token, user, nil
}

// CreateUser stores a new account with a freshly salted password hash.
func (s *AuthService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password must not be empty", common.ErrorValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}
