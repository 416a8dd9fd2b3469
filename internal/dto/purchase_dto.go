package dto

import (
	"encoding/json"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
)

type VerifyPurchaseRequest struct {
	PackageName string `json:"packageName"`
	ProductID   string `json:"productId"`
	Token       string `json:"token"`
	ProfileID   string `json:"profileId"`
}

type VerifyPurchaseResponse struct {
	Message      string          `json:"message"`
	PurchaseInfo json.RawMessage `json:"purchaseInfo"`
}

type MissingFieldsResponse struct {
	Error         string   `json:"error"`
	MissingFields []string `json:"missingFields"`
}

type PurchaseErrorResponse struct {
	Error           string          `json:"error"`
	Details         json.RawMessage `json:"details"`
	AuthorityStatus int             `json:"authorityStatus,omitempty"`
}

type ProductsResponse struct {
	Plans []models.RawInAppProduct `json:"plans"`
}

// CatalogErrorResponse is returned with status 200; Error is the discriminant.
type CatalogErrorResponse struct {
	Error     bool   `json:"error"`
	Message   string `json:"message"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
}

type MessageErrorResponse struct {
	Error string `json:"error"`
}
