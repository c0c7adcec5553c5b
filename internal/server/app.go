// Package server initializes and runs the authentication service.
// It opens the database, applies migrations, wires the user service and
// rate limiter, and starts the public HTTP API alongside the
// observability endpoint, with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/amitEt25/aiven-auth-assigment/internal/logging"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/auth"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/config"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/httpapi"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/observability"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/ratelimit"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/store"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *users.Service
	limiter     *ratelimit.Limiter
	obsServer   *observability.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := store.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := store.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	repo, err := users.NewPostgresRepository(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("repository init error: %w", err)
	}

	hasher := auth.NewHasher(auth.ScryptParams{
		N:       cfg.ScryptN,
		R:       cfg.ScryptR,
		P:       cfg.ScryptP,
		SaltLen: cfg.ScryptSaltLen,
		KeyLen:  cfg.ScryptKeyLen,
	})

	us := users.NewService(repo, hasher, cfg)
	limiter := ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitMax)
	obs := observability.NewServer(cfg.ObservabilityAddr, logger)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		userService: us,
		limiter:     limiter,
		obsServer:   obs,
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.userService,
		app.limiter, app.obsServer.Metrics(), app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startObservabilityServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.obsServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	app.limiter.StartSweep(ctx, app.config.RateLimitWindow)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startObservabilityServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "Error closing database", "error", err)
	}
}
