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

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.MigrateShared(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout),
		pgLogHandler,
	)))

	cleanup, err := logging.StartCleanup(database.DB, cfg.LogRetentionDays)
	if err != nil {
		slog.Error("log cleanup scheduler failed", "error", err)
		os.Exit(1)
	}

	// Services
	settingsService := services.NewSettingsService(database.DB, cfg)
	levelService := services.NewLevelConfigService(database.DB, settingsService)
	progressionService := services.NewProgressionService(database.DB, levelService)
	authService := services.NewAuthService(database.DB, cfg, levelService)
	userService := services.NewUserService(database.DB)
	goalService := services.NewGoalService(database.DB, settingsService, progressionService)

	slog.Info("seeding system settings")
	if err := settingsService.SeedDefaults(context.Background()); err != nil {
		slog.Error("settings seed failed", "error", err)
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(metrics.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, database.DB, routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Health:      handlers.NewHealthHandler(database.Ping),
		User:        handlers.NewUserHandler(userService, progressionService),
		Progression: handlers.NewProgressionHandler(progressionService),
		Level:       handlers.NewLevelHandler(levelService, settingsService),
		Settings:    handlers.NewSettingsHandler(settingsService),
		Goal:        handlers.NewGoalHandler(goalService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := cleanup.Shutdown(); err != nil {
		slog.Error("scheduler shutdown error", "error", err)
	}
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"request_id", c.Locals("requestid"),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
