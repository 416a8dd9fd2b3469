package middleware

import (
	"crypto/subtle"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired accepts either the X-Admin-Token header or a bearer JWT carrying role=admin.
func AdminRequired(cfg *config.Config) fiber.Handler {
	var bearer fiber.Handler
	if cfg.JWTSecret != "" {
		bearer = adminBearer(cfg.JWTSecret)
	}

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if subtle.ConstantTimeCompare([]byte(c.Get("X-Admin-Token")), []byte(cfg.AdminToken)) == 1 {
				return c.Next()
			}
		}

		if bearer != nil && c.Get(fiber.HeaderAuthorization) != "" {
			return bearer(c)
		}

		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
}
