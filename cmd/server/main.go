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
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/playstore"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// .env is optional; real environment wins
	_ = godotenv.Load()

	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
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

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	logging.Tee(pgLogHandler)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Google Play
	ctx := context.Background()
	play, err := playstore.New(ctx, playstore.Config{
		CredentialsFile:    cfg.CredentialsFile,
		ServiceAccountJSON: cfg.ServiceAccountJSON,
		Timeout:            cfg.GooglePlayTimeout,
	})
	if err != nil {
		slog.Error("google play client init failed", "error", err)
		os.Exit(1)
	}

	// Services
	catalogService := services.NewCatalogService(play, cfg.CatalogConcurrency)

	var redisClient *redis.Client
	var catalogCache *cache.RedisCatalogCache
	if cfg.RedisURL != "" {
		redisClient, err = cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			// catalog still works uncached
			slog.Warn("redis unavailable, catalog cache disabled", "error", err)
		} else {
			catalogCache = cache.NewRedisCatalogCache(redisClient)
			catalogService.WithCache(catalogCache, cfg.CatalogCacheTTL)
		}
	}

	entitlementService := services.NewEntitlementService(repository.NewEntitlementRepository(db))
	verificationService := services.NewVerificationService(services.NewPurchaseVerifier(play), entitlementService)

	// Handlers
	h := routes.Handlers{
		Purchase: handlers.NewPurchaseHandler(verificationService),
		Catalog:  handlers.NewCatalogHandler(catalogService, cfg.PackageName),
	}
	if catalogCache != nil {
		h.Health = handlers.NewHealthHandler(db, catalogCache)
	} else {
		h.Health = handlers.NewHealthHandler(db, nil)
	}
	if cfg.DebugEnabled() {
		h.Debug = handlers.NewDebugHandler(play, cfg.PackageName)
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

	// Fiber app
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
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	routes.Setup(app, cfg, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "package_name", cfg.PackageName)
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

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if err := database.Close(db); err != nil {
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
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
