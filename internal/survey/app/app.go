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

	httpapi "github.com/aussiebroadwan/qasurvey/internal/survey/http"
	"github.com/aussiebroadwan/qasurvey/internal/survey/service"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store/drivers/memory"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store/drivers/sqlite"
	"github.com/aussiebroadwan/qasurvey/internal/survey/validate"
	"github.com/aussiebroadwan/qasurvey/pkg/cryptox"
	"github.com/aussiebroadwan/qasurvey/pkg/jwtx"
	"github.com/aussiebroadwan/qasurvey/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the survey service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	signer jwtx.Signer

	// Services
	sessionService      *service.SessionService
	authService         *service.AuthService
	accountService      *service.AccountService
	recordService       *service.RecordService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService
	housekeepingStarted bool

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	return NewWithLogger(cfg, slogx.New(slogx.Config{
		Service: "qasurvey",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	}))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg Config, logger *slog.Logger) (*Application, error) {
	app := &Application{cfg: cfg, logger: logger}

	if err := app.initPepper(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, err := InitSigner(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session signer: %w", err)
	}
	app.signer = signer

	app.initServices()

	if err := app.bootstrap(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()
	app.housekeepingStarted = true

	app.logger.Info("survey service starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down survey service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slogx.Err(err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slogx.Err(err))
		}
	}

	if app.housekeepingStarted {
		app.housekeepingService.Stop()
		app.housekeepingStarted = false
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slogx.Err(err))
		return err
	}

	app.logger.Info("survey service stopped")
	return nil
}

func (app *Application) initPepper() error {
	if app.cfg.PepperFile != "" {
		if err := cryptox.LoadPepperFile(app.cfg.PepperFile); err != nil {
			return fmt.Errorf("failed to load pepper: %w", err)
		}
		return nil
	}
	cryptox.SetPepper(app.cfg.Pepper)
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase() error {
	switch app.cfg.StoreDriver {
	case DriverSQLite:
		db, err := sqlite.NewStore(app.cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db
	case DriverMemory, "":
		app.db = memory.NewStore()
	default:
		return fmt.Errorf("unknown store driver %q", app.cfg.StoreDriver)
	}

	if err := app.db.ApplyMigrations(); err != nil {
		_ = app.db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("store ready", "driver", app.cfg.StoreDriver)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	v := validate.New()
	now := service.Clock(time.Now)

	app.sessionService = &service.SessionService{
		Store:  app.db,
		Signer: app.signer,
		Issuer: app.cfg.TokenIssuer,
		TTL:    jwtx.DefaultSessionTTL,
		Now:    now,
	}
	app.authService = &service.AuthService{
		Store:    app.db,
		Sessions: app.sessionService,
		Now:      now,
	}
	app.accountService = &service.AccountService{Store: app.db, Validator: v, Now: now}
	app.recordService = &service.RecordService{Store: app.db, Validator: v, Now: now}
	app.bootstrapService = &service.BootstrapService{
		Accounts:   app.accountService,
		Name:       app.cfg.Admin.Name,
		Email:      app.cfg.Admin.Email,
		Password:   app.cfg.Admin.Password,
		NationalID: app.cfg.Admin.NationalID,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	app.housekeepingService.Now = now
}

// bootstrap seeds the first administrator when configured and the store is
// empty. A generated password is logged once since it is not stored anywhere
// in clear text.
func (app *Application) bootstrap(ctx context.Context) error {
	ctx = slogx.WithContext(ctx, app.logger)

	password, created, err := app.bootstrapService.EnsureAdministrator(ctx)
	if err != nil {
		return fmt.Errorf("failed to bootstrap administrator: %w", err)
	}
	if created && app.cfg.Admin.Password == "" {
		app.logger.Warn("administrator created with generated password",
			"email", app.cfg.Admin.Email,
			"password", password,
		)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.signer, BuildVersion, app.db, app.logger)

	// Wire services to router
	router.Limits = httpapi.Limits{
		Login:    app.cfg.RateLimits.Login,
		Register: app.cfg.RateLimits.Register,
		API:      app.cfg.RateLimits.API,
	}
	router.Sessions = app.sessionService
	router.AuthService = app.authService
	router.AccountService = app.accountService
	router.RecordService = app.recordService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
