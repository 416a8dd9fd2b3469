package routes

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Purchase *handlers.PurchaseHandler
	Catalog  *handlers.CatalogHandler
	Health   *handlers.HealthHandler
	// Debug is nil when the diagnostic endpoint is disabled.
	Debug *handlers.DebugHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	perIP := limiter.New(limiter.Config{
		Max:               cfg.RateLimitPerMin,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	app.Post("/verify-purchase", perIP, h.Purchase.VerifyPurchase)
	app.Get("/products", perIP, h.Catalog.Products)

	api := app.Group("/api", perIP)
	api.Get("/health", h.Health.Check)
	api.Get("/plans", h.Catalog.Plans)

	// Admin only; not mounted without an admin credential
	if h.Debug == nil || !cfg.DebugEnabled() {
		slog.Warn("debug route not mounted, set ADMIN_TOKEN or JWT_SECRET to enable it",
			"operation", "routes_setup",
			"route", "GET /debug/google-play",
		)
		return
	}
	debug := app.Group("/debug", middleware.AdminRequired(cfg))
	debug.Get("/google-play", h.Debug.GooglePlay)
}
