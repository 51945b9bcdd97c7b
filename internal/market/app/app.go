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

	"github.com/aussiebroadwan/market/internal/market/events"
	httpapi "github.com/aussiebroadwan/market/internal/market/http"
	"github.com/aussiebroadwan/market/internal/market/imagehost"
	"github.com/aussiebroadwan/market/internal/market/imagehost/cloudinary"
	"github.com/aussiebroadwan/market/internal/market/imagehost/local"
	"github.com/aussiebroadwan/market/internal/market/imagehost/s3"
	"github.com/aussiebroadwan/market/internal/market/metrics"
	"github.com/aussiebroadwan/market/internal/market/service"
	"github.com/aussiebroadwan/market/internal/market/store"
	"github.com/aussiebroadwan/market/internal/market/store/drivers/mongo"
	"github.com/aussiebroadwan/market/internal/market/store/drivers/sqlite"
	"github.com/aussiebroadwan/market/internal/market/tokencache"
	"github.com/aussiebroadwan/market/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the market service and its optional collaborators.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	images  imagehost.Host
	media   http.Handler // set for the local image host only
	metrics *metrics.Metrics

	// Optional dependencies
	cache     *tokencache.RedisCache
	publisher events.Publisher

	// Services
	userService  *service.UserService
	offerService *service.OfferService
	authService  *service.AuthService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "market",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
	}

	ctx := context.Background()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initImageHost(ctx); err != nil {
		app.closeAll()
		return nil, err
	}
	if err := app.initCache(ctx); err != nil {
		app.closeAll()
		return nil, err
	}
	if err := app.initEvents(); err != nil {
		app.closeAll()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("market service starting", "port", app.cfg.Port, "version", BuildVersion)

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
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.closeAll()
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
	app.logger.Info("shutting down market service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.closeAll(); err != nil {
		return err
	}

	app.logger.Info("market service stopped")
	return nil
}

// Handler returns the fully wired router, for in-process servers.
func (app *Application) Handler() http.Handler {
	return app.router
}

// closeAll releases every external connection that was opened. The database
// error, if any, is returned.
func (app *Application) closeAll() error {
	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error("error closing event publisher", "error", err)
		}
	}
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("error closing token cache", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			return err
		}
	}
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.StoreDriver {
	case "mongo":
		if app.cfg.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo store")
		}
		db, err = mongo.NewStore(ctx, app.cfg.MongoURI, app.cfg.MongoDatabase)
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", app.cfg.StoreDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.StoreDriver)
	return nil
}

// initImageHost builds the configured image host
func (app *Application) initImageHost(ctx context.Context) error {
	switch app.cfg.ImageHost {
	case "cloudinary":
		host, err := cloudinary.New(app.cfg.CloudinaryURL, cloudinary.WithUploadPrefix(app.cfg.CloudinaryAPI))
		if err != nil {
			return err
		}
		app.images = host
	case "s3":
		host, err := s3.New(ctx, s3.Config{
			Endpoint:  app.cfg.S3Endpoint,
			Region:    app.cfg.S3Region,
			Bucket:    app.cfg.S3Bucket,
			AccessKey: app.cfg.S3AccessKey,
			SecretKey: app.cfg.S3SecretKey,
			PublicURL: app.cfg.S3PublicURL,
		})
		if err != nil {
			return err
		}
		app.images = host
	case "local":
		host, err := local.New(app.cfg.MediaDir, app.cfg.MediaBaseURL)
		if err != nil {
			return err
		}
		app.images = host
		app.media = host.Handler()
	default:
		return fmt.Errorf("unknown IMAGE_HOST %q", app.cfg.ImageHost)
	}

	app.logger.Info("image host configured", "host", app.cfg.ImageHost)
	return nil
}

// initCache connects the Redis token cache when REDIS_ADDR is set
func (app *Application) initCache(ctx context.Context) error {
	if app.cfg.RedisAddr == "" {
		return nil
	}

	client, err := tokencache.Dial(ctx, app.cfg.RedisAddr, app.cfg.RedisPassword, app.cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("failed to connect token cache: %w", err)
	}
	app.cache = tokencache.NewRedisCache(client, app.cfg.TokenCacheTTL)

	app.logger.Info("token cache enabled", "addr", app.cfg.RedisAddr, "ttl", app.cfg.TokenCacheTTL)
	return nil
}

// initEvents connects the AMQP publisher when AMQP_URL is set
func (app *Application) initEvents() error {
	if app.cfg.AMQPURL == "" {
		app.publisher = events.NopPublisher{}
		return nil
	}

	publisher, err := events.NewAMQPPublisher(app.cfg.AMQPURL, app.cfg.AMQPExchange)
	if err != nil {
		return fmt.Errorf("failed to connect event publisher: %w", err)
	}
	app.publisher = publisher

	app.logger.Info("offer events enabled", "exchange", app.cfg.AMQPExchange)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store:   app.db,
		Images:  app.images,
		Metrics: app.metrics,
	}
	app.offerService = &service.OfferService{
		Store:   app.db,
		Images:  app.images,
		Events:  app.publisher,
		Metrics: app.metrics,
	}

	app.authService = &service.AuthService{Store: app.db}
	if app.cache != nil {
		app.authService.Cache = app.cache
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(httpapi.RouterConfig{
		BuildVersion:      BuildVersion,
		LegacyStatusCodes: app.cfg.LegacyStatusCodes,
		MaxBodyBytes:      app.cfg.MaxUploadBytes,
		CORSOrigins:       app.cfg.CORSAllowedOrigins,
	}, app.db, app.metrics, app.logger)

	// Wire services to router
	router.UserService = app.userService
	router.OfferService = app.offerService
	router.AuthService = app.authService

	if app.cache != nil {
		router.AddReadinessCheck("cache", app.cache)
	}
	if app.media != nil {
		router.ServeMedia(app.media)
	}
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
