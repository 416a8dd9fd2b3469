package middleware

import (
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// adminBearer validates an HS256 bearer token and requires a role=admin claim.
func adminBearer(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     jwtware.SigningKey{Key: []byte(secret)},
		SuccessHandler: requireAdminClaim,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

func requireAdminClaim(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid claims",
		})
	}

	if role, _ := claims["role"].(string); role == "admin" {
		return c.Next()
	}
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Error: true, Message: "Admin access required",
	})
}
