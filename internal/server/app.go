// Package server initializes and runs the authentication server.
// It wires the storage backends, the session store and the credential
// services together, handles graceful shutdown, and starts the HTTP
// server for the auth endpoints.
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

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/authkit/internal/logging"
	"github.com/dmitrijs2005/authkit/internal/server/auth"
	"github.com/dmitrijs2005/authkit/internal/server/config"
	"github.com/dmitrijs2005/authkit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkit/internal/server/rest"
	"github.com/dmitrijs2005/authkit/internal/server/services"
	"github.com/dmitrijs2005/authkit/internal/server/sessions"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var store sessions.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		store = sessions.NewRedisStore(client)
	} else {
		logger.Warn(ctx, "no redis address configured, using in-memory session store")
		store = sessions.NewMemoryStore()
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	issuer := auth.NewIssuer([]byte(cfg.SecretKey))

	handler := rest.NewAuthHandler(
		services.NewRegistrationService(db, rm, hasher),
		services.NewLoginService(db, rm, store, hasher, issuer, cfg),
		services.NewRefreshService(issuer, cfg),
		services.NewFederationService(db, rm),
		logger,
	)

	srv := rest.NewServer(cfg.EndpointAddrHTTP, handler, issuer, store, logger)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
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
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
