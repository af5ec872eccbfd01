package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/config"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/database"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/logging"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/routes"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logging (JSON to stdout)
	stdoutHandler := logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET_KEY environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdoutHandler, dbLogHandler)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logging.StartCleanup(ctx, db, cfg.LogRetention)

	// Services
	tokenService, err := services.NewTokenService(cfg)
	if err != nil {
		slog.Error("token service setup failed", "error", err)
		os.Exit(1)
	}
	identity, err := newIdentityProvider(cfg, db)
	if err != nil {
		slog.Error("identity provider setup failed", "provider", cfg.IdentityProvider, "error", err)
		os.Exit(1)
	}
	profileService := services.NewProfileService(db)
	authService := services.NewAuthService(identity, profileService, tokenService)
	taskService := services.NewTaskService(db)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	routes.Setup(app, routes.Deps{
		Tokens:        tokenService,
		Profiles:      profileService,
		Metrics:       middleware.NewMetrics(registry),
		AuthHandler:   handlers.NewAuthHandler(authService, profileService),
		TaskHandler:   handlers.NewTaskHandler(taskService),
		HealthHandler: handlers.NewHealthHandler(db),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "identity_provider", cfg.IdentityProvider)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	cancel()
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func newIdentityProvider(cfg *config.Config, db *gorm.DB) (services.IdentityProvider, error) {
	switch cfg.IdentityProvider {
	case "local":
		return services.NewLocalIdentityProvider(db), nil
	default:
		return services.NewIdentityToolkitClient(cfg.IdentityBaseURL, cfg.IdentityAPIKey, cfg.IdentityTimeout)
	}
}
