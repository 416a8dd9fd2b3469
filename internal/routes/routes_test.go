package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/playstore"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPlay struct{}

func (nopPlay) GetProductPurchase(context.Context, string, string, string) (*models.PurchaseRecord, error) {
	return &models.PurchaseRecord{StatusCode: http.StatusOK, Payload: json.RawMessage(`{}`)}, nil
}
func (nopPlay) ListSubscriptions(context.Context, string) ([]models.RawSubscription, error) {
	return nil, nil
}
func (nopPlay) GetSubscription(context.Context, string, string) (*models.RawSubscription, error) {
	return nil, nil
}
func (nopPlay) ListInAppProducts(context.Context, string) ([]models.RawInAppProduct, error) {
	return nil, nil
}
func (nopPlay) CheckAuth(context.Context) error { return nil }
func (nopPlay) AppDetails(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}
func (nopPlay) ServiceAccount() playstore.ServiceAccount { return playstore.ServiceAccount{} }
func (nopPlay) Scopes() []string                         { return nil }

type nopGranter struct{}

func (nopGranter) Grant(context.Context, string, json.RawMessage) error { return nil }

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	Setup(app, cfg, Handlers{
		Purchase: handlers.NewPurchaseHandler(services.NewVerificationService(services.NewPurchaseVerifier(nopPlay{}), nopGranter{})),
		Catalog:  handlers.NewCatalogHandler(services.NewCatalogService(nopPlay{}, 1), "com.example.app"),
		Health:   handlers.NewHealthHandler(nil, nil),
		Debug:    handlers.NewDebugHandler(nopPlay{}, "com.example.app"),
	})
	return app
}

func get(t *testing.T, app *fiber.App, path string, headers map[string]string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestSetup(t *testing.T) {
	t.Run("debug not mounted without admin credentials", func(t *testing.T) {
		var logs bytes.Buffer
		prev := slog.Default()
		slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
		t.Cleanup(func() { slog.SetDefault(prev) })

		app := newApp(&config.Config{RateLimitPerMin: 60})
		assert.Equal(t, http.StatusNotFound, get(t, app, "/debug/google-play", nil))
		assert.Contains(t, logs.String(), "GET /debug/google-play")
		assert.Contains(t, logs.String(), "ADMIN_TOKEN")
		assert.Equal(t, http.StatusOK, get(t, app, "/api/plans", nil))
		assert.Equal(t, http.StatusOK, get(t, app, "/products", nil))
	})

	t.Run("debug guarded by admin token", func(t *testing.T) {
		app := newApp(&config.Config{RateLimitPerMin: 60, AdminToken: "secret"})
		assert.Equal(t, http.StatusUnauthorized, get(t, app, "/debug/google-play", nil))
		assert.Equal(t, http.StatusOK, get(t, app, "/debug/google-play", map[string]string{"X-Admin-Token": "secret"}))
	})

	t.Run("rate limited per ip", func(t *testing.T) {
		app := newApp(&config.Config{RateLimitPerMin: 2})
		assert.Equal(t, http.StatusOK, get(t, app, "/products", nil))
		assert.Equal(t, http.StatusOK, get(t, app, "/products", nil))
		assert.Equal(t, http.StatusTooManyRequests, get(t, app, "/products", nil))
	})
}
