package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Pinger is implemented by the catalog cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    *gorm.DB
	cache Pinger
}

// NewHealthHandler takes a nil cache when caching is disabled.
func NewHealthHandler(db *gorm.DB, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "ok"
		if err := h.cache.Ping(c.UserContext()); err != nil {
			cacheStatus = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Cache:     cacheStatus,
	})
}
