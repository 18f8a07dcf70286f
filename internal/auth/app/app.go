package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/MrFrey75/AppSimple-sub001/internal/auth/http"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/service"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store/drivers/sqlite"
	"github.com/MrFrey75/AppSimple-sub001/pkg/cryptox"
	"github.com/MrFrey75/AppSimple-sub001/pkg/jwtx"
	"github.com/MrFrey75/AppSimple-sub001/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application wires the API server and its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     *sqlite.Store
	tokens *jwtx.HS256
	hasher *cryptox.Hasher

	authService      *service.AuthService
	userService      *service.UserService
	bootstrapService *service.BootstrapService

	server *http.Server
	router *httpapi.Router
}

// New validates cfg, opens and bootstraps the database and builds the HTTP
// server. A missing or short token secret is an error here, before anything
// else is touched.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "appsimple-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		hasher: cryptox.NewHasher(cryptox.DefaultParams),
	}

	tokens, err := jwtx.NewHS256(cfg.TokenConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	app.tokens = tokens

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.bootstrapService.Bootstrap(ctx); err != nil {
		_ = app.db.Close()
		slogx.LogError(app.logger, "bootstrap failed", err)
		return nil, fmt.Errorf("failed to bootstrap database: %w", err)
	}

	app.initHTTP()
	return app, nil
}

// Handler is the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("api server starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"token_lifetime", app.tokens.Lifetime().String(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	app.logger.Info("shutting down api server...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("api server stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.db = db

	app.logger.Info("database opened", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:  app.db,
		Hasher: app.hasher,
		Tokens: app.tokens,
	}
	app.userService = &service.UserService{
		Store:  app.db,
		Hasher: app.hasher,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:         app.db,
		Hasher:        app.hasher,
		AdminPassword: app.cfg.AdminPassword,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.LoginLimit = app.cfg.LoginLimit()
	router.TrustProxy = app.cfg.TrustProxy
	router.AuthService = app.authService
	router.UserService = app.userService
	router.BootstrapService = app.bootstrapService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
