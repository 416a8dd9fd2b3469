package playstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
)

// GetProductPurchase calls purchases.products.get once and returns the payload verbatim.
func (c *Client) GetProductPurchase(ctx context.Context, packageName, productID, token string) (*models.PurchaseRecord, error) {
	resp, err := c.svc.Purchases.Products.Get(packageName, productID, token).
		Context(ctx).
		Do()
	if err != nil {
		return nil, toAuthorityError(err, 0)
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode product purchase: %w", err)
	}

	return &models.PurchaseRecord{
		StatusCode: resp.HTTPStatusCode,
		Payload:    payload,
	}, nil
}
