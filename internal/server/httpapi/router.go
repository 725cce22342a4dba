// Package httpapi is the HTTP surface of the server: login and logout, the
// book catalog, health and metrics.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/librarylite/internal/logging"
	"github.com/dmitrijs2005/librarylite/internal/server/auth"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
	"github.com/dmitrijs2005/librarylite/internal/server/services"
	"github.com/dmitrijs2005/librarylite/internal/server/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (*auth.Token, *models.User, error)
}

type BookCatalog interface {
	List(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, user *models.User, in services.BookInput) (*models.Book, error)
	Update(ctx context.Context, user *models.User, id int64, in services.BookInput) (*models.Book, error)
	Delete(ctx context.Context, user *models.User, id int64) error
}

// IdentityResolver maps a request to the account behind its session cookie.
type IdentityResolver interface {
	Required(r *http.Request) (*models.User, error)
	Optional(r *http.Request) (*models.User, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Observer is the metrics sink used by the router.
type Observer interface {
	AuthOutcome(operation, outcome string)
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

// Deps is everything the router needs.
type Deps struct {
	Auth     Authenticator
	Books    BookCatalog
	Sessions IdentityResolver
	Cookies  *session.Cookies
	DB       Pinger
	Metrics  Observer
	Logger   logging.Logger
}

type handlers struct {
	auth     Authenticator
	books    BookCatalog
	sessions IdentityResolver
	cookies  *session.Cookies
	db       Pinger
	recorder Observer
	log      logging.Logger
}

func NewRouter(d Deps) http.Handler {
	h := &handlers{
		auth:     d.Auth,
		books:    d.Books,
		sessions: d.Sessions,
		cookies:  d.Cookies,
		db:       d.DB,
		recorder: d.Metrics,
		log:      d.Logger.With("module", "http"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(d.Metrics.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.healthz)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	r.Get(loginPath, h.loginForm)
	r.Post(loginPath, h.login)
	r.Post("/logout", h.logout)
	r.Get("/me", h.withUser(h.me))

	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.withOptionalUser(h.listBooks))
		r.Post("/", h.withUser(h.createBook))
		r.Get("/{id}", h.withOptionalUser(h.getBook))
		r.Put("/{id}", h.withUser(h.updateBook))
		r.Delete("/{id}", h.withUser(h.deleteBook))
	})

	return r
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warn(ctx, "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		h.log.Info(r.Context(), "request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
