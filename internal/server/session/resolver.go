package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/librarylite/internal/common"
	"github.com/dmitrijs2005/librarylite/internal/logging"
	"github.com/dmitrijs2005/librarylite/internal/server/auth"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// UserFinder looks accounts up by username; common.ErrorNotFound means the
// account does not exist.
type UserFinder interface {
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}

// Recorder receives the outcome of every resolution.
type Recorder interface {
	AuthOutcome(operation, outcome string)
}

type Status int

const (
	StatusAbsent Status = iota
	StatusInvalid
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusInvalid:
		return "invalid"
	default:
		return "absent"
	}
}

// Result is the outcome of resolving a request. User is set only when
// Status is StatusAuthenticated.
type Result struct {
	Status Status
	User   *models.User
}

type Resolver struct {
	tokens   TokenVerifier
	users    UserFinder
	log      logging.Logger
	recorder Recorder
}

func NewResolver(tokens TokenVerifier, users UserFinder, log logging.Logger, recorder Recorder) *Resolver {
	return &Resolver{
		tokens:   tokens,
		users:    users,
		log:      log.With("module", "session"),
		recorder: recorder,
	}
}

// Required returns the account behind the request or
// common.ErrUnauthenticated when there is none. Infrastructure failures
// are reported as common.ErrorInternal.
func (r *Resolver) Required(req *http.Request) (*models.User, error) {
	res, err := r.resolve(req)
	if err != nil {
		return nil, err
	}
	if res.Status != StatusAuthenticated {
		return nil, common.ErrUnauthenticated
	}
	return res.User, nil
}

// Optional returns the account behind the request, or nil when the request
// carries no usable session.
func (r *Resolver) Optional(req *http.Request) (*models.User, error) {
	res, err := r.resolve(req)
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

func (r *Resolver) resolve(req *http.Request) (Result, error) {
	ctx := req.Context()

	res, err := r.lookup(ctx, req)
	if err != nil {
		r.record("error")
		return Result{}, err
	}
	r.record(res.Status.String())
	return res, nil
}

func (r *Resolver) lookup(ctx context.Context, req *http.Request) (Result, error) {
	token, ok := TokenFromRequest(req)
	if !ok {
		return Result{Status: StatusAbsent}, nil
	}

	claims, err := r.tokens.Verify(token)
	if err != nil {
		r.log.Debug(ctx, "session token rejected")
		return Result{Status: StatusInvalid}, nil
	}

	user, err := r.users.GetUserByLogin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			r.log.Debug(ctx, "session subject no longer exists", "username", claims.Subject)
			return Result{Status: StatusInvalid}, nil
		}
		r.log.Error(ctx, "session lookup failed", "error", err)
		return Result{}, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return Result{Status: StatusAuthenticated, User: user}, nil
}

func (r *Resolver) record(outcome string) {
	if r.recorder != nil {
		r.recorder.AuthOutcome("resolve", outcome)
	}
}
