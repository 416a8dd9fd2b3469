package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	verificationService *services.VerificationService
}

func NewPurchaseHandler(verificationService *services.VerificationService) *PurchaseHandler {
	return &PurchaseHandler{verificationService: verificationService}
}

// VerifyPurchase checks a purchase token with Google Play and grants premium access.
func (h *PurchaseHandler) VerifyPurchase(c *fiber.Ctx) error {
	var req dto.VerifyPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.verificationService.VerifyPurchase(c.UserContext(), req)
	if err != nil {
		var missing *services.MissingFieldError
		if errors.As(err, &missing) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.MissingFieldsResponse{
				Error:         missing.Error(),
				MissingFields: missing.Fields,
			})
		}

		resp := dto.PurchaseErrorResponse{
			Error:   "An internal error occurred during purchase verification.",
			Details: json.RawMessage(`"No additional details"`),
		}
		var verr *services.VerificationError
		if errors.As(err, &verr) {
			resp.Error = "Failed to verify purchase"
			resp.AuthorityStatus = verr.Status
			if len(verr.Details) > 0 {
				resp.Details = verr.Details
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}

	if result.GrantErr != nil {
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(result.GrantErr)
		}
		slog.Warn("premium grant pending after verified purchase",
			"operation", "verify_purchase",
			"profile_id", req.ProfileID,
			"product_id", req.ProductID,
			"request_id", requestID(c),
		)
	}

	return c.JSON(dto.VerifyPurchaseResponse{
		Message:      "Purchase verified successfully",
		PurchaseInfo: result.Purchase.Payload,
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
