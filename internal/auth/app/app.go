package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/clientsfile"
	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	httpapi "github.com/aussiebroadwan/familytree/internal/auth/http"
	"github.com/aussiebroadwan/familytree/internal/auth/service"
	"github.com/aussiebroadwan/familytree/internal/auth/store"
	"github.com/aussiebroadwan/familytree/internal/auth/store/drivers/redis"
	"github.com/aussiebroadwan/familytree/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/familytree/pkg/httpx"
	"github.com/aussiebroadwan/familytree/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// now is the one clock shared by the issuer, the codec, the client
	// store timestamps and /v1/debug/now.
	now func() time.Time

	// Core dependencies
	db         store.Store
	signingKey []byte

	// Services
	clientService *service.ClientService
	tokenService  *service.TokenService
	authenticator *service.PrincipalAuthenticator

	// Optional: only when AUTH_CLIENTS_FILE is set
	clientsWatcher *clientsfile.Watcher
	syncService    *service.ClientSyncService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// Option adjusts an Application before it is initialized.
type Option func(*Application)

// WithClock replaces time.Now as the application clock.
func WithClock(now func() time.Time) Option {
	return func(app *Application) { app.now = now }
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config, opts ...Option) (*Application, error) {
	app := &Application{
		cfg: cfg,
		now: time.Now,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	for _, opt := range opts {
		opt(app)
	}

	ctx := context.Background()

	if err := app.initStore(ctx); err != nil {
		return nil, err
	}

	key, err := LoadSigningKey(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.signingKey = key

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initClientSync(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if empty, err := app.clientService.IsEmpty(ctx); err != nil {
		app.logger.Warn("could not count registered clients", "error", err)
	} else if empty {
		app.logger.Warn("no clients registered: every token request will be rejected until one is created or AUTH_CLIENTS_FILE is set")
	}

	if err := app.initHTTP(); err != nil {
		if app.clientsWatcher != nil {
			_ = app.clientsWatcher.Close()
		}
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.syncService != nil {
		app.syncService.Start()
	}

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.syncService != nil {
		app.syncService.Stop()
	}
	if app.clientsWatcher != nil {
		if err := app.clientsWatcher.Close(); err != nil {
			app.logger.Error("error closing clients file watcher", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing client store", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initStore opens the configured client store and applies migrations
func (app *Application) initStore(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.ClientStore {
	case StoreRedis:
		db, err = redis.NewStore(ctx, redis.Config{
			Addr:      app.cfg.RedisAddr,
			Password:  app.cfg.RedisPassword,
			DB:        app.cfg.RedisDB,
			KeyPrefix: app.cfg.RedisKeyPrefix,
		})
	default:
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s client store: %w", app.cfg.ClientStore, err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply client store migrations: %w", err)
	}

	attrs := []any{"driver", app.cfg.ClientStore}
	if v, ok := db.(interface{ SchemaVersion() (uint, bool, error) }); ok {
		if version, dirty, err := v.SchemaVersion(); err == nil {
			attrs = append(attrs, "schema_version", version, "schema_dirty", dirty)
		}
	}
	app.logger.Info("client store ready", attrs...)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	codec, err := service.NewTokenCodec(service.TokenCodecConfig{
		Key:    app.signingKey,
		Issuer: app.cfg.Issuer,
		Now:    app.now,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}

	app.clientService = &service.ClientService{Store: app.db, Now: app.now}
	app.tokenService = &service.TokenService{
		Issuer: &service.TokenIssuer{Duration: app.cfg.AccessTokenTTL, Now: app.now},
		Codec:  codec,
	}
	app.authenticator = &service.PrincipalAuthenticator{Clients: app.clientService}

	app.logger.Info("token service ready",
		"issuer", app.cfg.Issuer,
		"access_token_ttl", app.cfg.AccessTokenTTL,
	)
	return nil
}

// initClientSync watches AUTH_CLIENTS_FILE and seeds the store from it. The
// first sync runs here so a broken file stops startup.
func (app *Application) initClientSync(ctx context.Context) error {
	if app.cfg.ClientsFile == "" {
		return nil
	}

	path := app.cfg.ClientsFile
	source := func() ([]domain.ClientDefinition, error) { return clientsfile.Load(path) }

	syncer := service.NewClientSyncService(app.clientService, source, nil, app.logger, app.cfg.ClientSyncInterval)
	res, err := syncer.Sync(ctx)
	if err != nil {
		return fmt.Errorf("failed to sync clients file %s: %w", path, err)
	}
	app.logger.Info("clients file applied",
		"path", path,
		"created", res.Created,
		"updated", res.Updated,
		"unchanged", res.Unchanged,
	)

	watcher, err := clientsfile.Watch(path, app.logger)
	if err != nil {
		// Periodic sync still covers changes.
		app.logger.Warn("clients file watch unavailable", "path", path, "error", err)
	} else {
		app.clientsWatcher = watcher
		syncer.Changes = watcher.Changes()
	}

	app.syncService = syncer
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	trusted, err := httpx.ParseTrustedProxies(app.cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.tokenService.Codec,
		app.authenticator,
		app.logger,
	)

	router.TokenService = app.tokenService
	router.ClientService = app.clientService
	router.DebugEndpoints = app.cfg.DebugEndpoints
	router.Now = app.now
	router.TrustedProxies = trusted
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
