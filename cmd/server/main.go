package main

import (
	"context"
	"errors"
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
	"github.com/redis/go-redis/v9"
	"github.com/talentbridge/intake-backend/internal/apperr"
	"github.com/talentbridge/intake-backend/internal/auth"
	"github.com/talentbridge/intake-backend/internal/config"
	"github.com/talentbridge/intake-backend/internal/database"
	"github.com/talentbridge/intake-backend/internal/dto"
	"github.com/talentbridge/intake-backend/internal/handlers"
	"github.com/talentbridge/intake-backend/internal/logging"
	"github.com/talentbridge/intake-backend/internal/middleware"
	"github.com/talentbridge/intake-backend/internal/routes"
	"github.com/talentbridge/intake-backend/internal/services"
	"github.com/talentbridge/intake-backend/internal/session"
	"github.com/talentbridge/intake-backend/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.SessionSecret == "" {
		slog.Error("SESSION_SECRET environment variable is required")
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
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Session store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	sessionManager := session.NewManager(session.NewRedisStore(redisClient), cfg.SessionSecret, cfg.SessionTTL)

	// Object storage
	objectStore, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		slog.Error("object storage init failed", "error", err)
		os.Exit(1)
	}

	// Services
	applicantService := services.NewApplicantService(database.DB)
	uploadService := services.NewUploadService(database.DB, objectStore, cfg)
	submissionService := services.NewSubmissionService(database.DB)
	opportunityService := services.NewOpportunityService(database.DB)

	// Identity resolution: explicit verifier instance, constructed once
	// and injected, never lazily initialized.
	verifier := auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	resolver := middleware.NewIdentityResolver(verifier, sessionManager, applicantService)

	// Handlers
	applicantHandler := handlers.NewApplicantHandler(applicantService, uploadService, sessionManager, cfg)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	opportunityHandler := handlers.NewOpportunityHandler(opportunityService)
	healthHandler := handlers.NewHealthHandler(redisClient)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
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

	// Routes
	routes.Setup(app, resolver, applicantHandler, uploadHandler, submissionHandler, opportunityHandler, healthHandler)

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

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}
	if err := redisClient.Close(); err != nil {
		slog.Error("redis close error", "error", err)
	}

	slog.Info("server stopped")
}

// errorHandler renders the apperr taxonomy. Classification happened at
// the point of detection; this only maps kind to status and hides
// internal detail.
func errorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		if appErr.Kind == apperr.KindInternal {
			slog.Error("internal error", "method", c.Method(), "path", c.Path(), "error", err.Error())
			return c.Status(appErr.Status()).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		return c.Status(appErr.Status()).JSON(dto.ErrorResponse{
			Error: true, Message: appErr.Message,
		})
	}

	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}
