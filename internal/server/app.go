// Package server wires the LibraryLite server together: storage, services,
// the HTTP surface and the gRPC health endpoint, and runs them until a
// termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/librarylite/internal/dbx"
	"github.com/dmitrijs2005/librarylite/internal/logging"
	"github.com/dmitrijs2005/librarylite/internal/server/auth"
	"github.com/dmitrijs2005/librarylite/internal/server/config"
	gs "github.com/dmitrijs2005/librarylite/internal/server/grpc"
	"github.com/dmitrijs2005/librarylite/internal/server/httpapi"
	"github.com/dmitrijs2005/librarylite/internal/server/metrics"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/librarylite/internal/server/services"
	"github.com/dmitrijs2005/librarylite/internal/server/session"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
	grpcServer *gs.GRPCServer
}

// NewApp opens the database, applies migrations, seeds an empty store and
// builds both servers.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, dialect, err := dbx.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, dialect dbx.Dialect) (*App, error) {
	rm, err := repomanager.New(dialect)
	if err != nil {
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(c.PasswordHashCost)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokenCodec(auth.TokenConfig{
		Secret: []byte(c.SecretKey),
		TTL:    c.AccessTokenValidityDuration,
	})
	if err != nil {
		return nil, err
	}

	seeder := services.NewSeeder(db, rm, hasher, logger)
	if err := seeder.Seed(ctx, services.AdminAccount{
		UserName:     c.AdminUsername,
		Password:     c.AdminPassword,
		PasswordHash: c.AdminPasswordHash,
	}); err != nil {
		return nil, fmt.Errorf("seed error: %w", err)
	}

	authService, err := services.NewAuthService(db, rm, hasher, tokens, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	router := httpapi.NewRouter(httpapi.Deps{
		Auth:     authService,
		Books:    services.NewBookService(db, rm, logger),
		Sessions: session.NewResolver(tokens, rm.Users(db), logger, m),
		Cookies:  session.NewCookies(c.CookieSecure),
		DB:       db,
		Metrics:  m,
		Logger:   logger,
	})

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		httpServer: httpapi.NewServer(c.EndpointAddrHTTP, router, logger),
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, db, c.HealthCheckInterval, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runServer runs fn and cancels the whole app when it fails.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http", app.httpServer.Run)
	}()
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "grpc", app.grpcServer.Run)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
