package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthHandler_Check(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	healthApp := func(h *HealthHandler) *fiber.App {
		app := fiber.New()
		app.Get("/api/health", h.Check)
		return app
	}

	t.Run("cache disabled", func(t *testing.T) {
		status, body := doJSON(t, healthApp(NewHealthHandler(db, nil)), http.MethodGet, "/api/health", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "ok", body["db"])
		assert.Equal(t, "disabled", body["cache"])
	})

	t.Run("cache unhealthy", func(t *testing.T) {
		status, body := doJSON(t, healthApp(NewHealthHandler(db, fakePinger{err: errors.New("connection refused")})), http.MethodGet, "/api/health", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "unhealthy: connection refused", body["cache"])
	})
}
