package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/playstore"
	"github.com/gofiber/fiber/v2"
)

// PlayProber is the subset of *playstore.Client the diagnostic endpoint needs.
type PlayProber interface {
	CheckAuth(ctx context.Context) error
	AppDetails(ctx context.Context, packageName string) (json.RawMessage, error)
	ServiceAccount() playstore.ServiceAccount
	Scopes() []string
}

type DebugHandler struct {
	prober      PlayProber
	packageName string
}

func NewDebugHandler(prober PlayProber, packageName string) *DebugHandler {
	return &DebugHandler{prober: prober, packageName: packageName}
}

// GooglePlay checks authentication and reads app metadata. Only an auth failure is a 500.
func (h *DebugHandler) GooglePlay(c *fiber.Ctx) error {
	now := time.Now().UTC().Format(time.RFC3339)
	ctx := c.UserContext()

	if err := h.prober.CheckAuth(ctx); err != nil {
		slog.Error("google play auth check failed", "operation", "debug_google_play", "package_name", h.packageName, "error", err)
		resp := dto.DebugErrorResponse{Error: err.Error(), Timestamp: now}
		var authErr *models.AuthorityError
		if errors.As(err, &authErr) {
			resp.Error = authErr.Message
			resp.Code = authErr.StatusCode
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}

	sa := h.prober.ServiceAccount()
	resp := dto.DebugResponse{
		Timestamp: now,
		ServiceAccount: dto.ServiceAccountInfo{
			ClientEmail: sa.ClientEmail,
			ProjectID:   sa.ProjectID,
		},
		PackageName: h.packageName,
		AuthTest:    "SUCCESS",
		Scopes:      h.prober.Scopes(),
		APIVersion:  playstore.APIVersion,
	}

	details, err := h.prober.AppDetails(ctx, h.packageName)
	if err != nil {
		slog.Warn("google play app details probe failed", "operation", "debug_google_play", "package_name", h.packageName, "error", err)
		resp.AppDetailsError = err.Error()
	} else {
		resp.AppDetails = details
	}

	return c.JSON(resp)
}
