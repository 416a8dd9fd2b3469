package handlers

import (
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	packageName    string
}

func NewCatalogHandler(catalogService *services.CatalogService, packageName string) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, packageName: packageName}
}

// Products returns the legacy in-app product list for the configured package.
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	products, err := h.catalogService.ListInAppProducts(c.UserContext(), h.packageName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageErrorResponse{
			Error: "Failed to fetch products",
		})
	}
	return c.JSON(dto.ProductsResponse{Plans: products})
}

// Plans returns the unified catalog. A failed catalog fetch is reported in the body
// with status 200 and "error": true.
func (h *CatalogHandler) Plans(c *fiber.Ctx) error {
	products, err := h.catalogService.ListUnifiedCatalog(c.UserContext(), h.packageName)
	if err != nil {
		var nerr *services.NormalizationError
		if errors.As(err, &nerr) {
			return c.JSON(dto.CatalogErrorResponse{
				Error:     true,
				Message:   nerr.Message,
				Details:   nerr.Details,
				Timestamp: nerr.Timestamp.Format(time.RFC3339),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageErrorResponse{
			Error: "Failed to fetch plans",
		})
	}

	if c.Query("include") == "one_time" {
		oneTime, err := h.catalogService.ListOneTimeProducts(c.UserContext(), h.packageName)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageErrorResponse{
				Error: "Failed to fetch one-time products",
			})
		}
		products = append(products, oneTime...)
	}

	return c.JSON(products)
}
