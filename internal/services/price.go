package services

import (
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
	"github.com/shopspring/decimal"
)

const notAvailable = "N/A"

const maxNanos = 999_999_999

// FormatPrice renders a catalog price as a decimal string, or "N/A" when the price
// is missing or malformed.
func FormatPrice(p *models.Price) string {
	if p == nil {
		return notAvailable
	}

	if p.Units != nil && p.Nanos != nil {
		if *p.Nanos < 0 || *p.Nanos > maxNanos {
			return notAvailable
		}
		// decimal.String drops trailing zeros and a bare trailing point.
		return decimal.New(*p.Units, 0).Add(decimal.New(*p.Nanos, -9)).String()
	}

	if p.PriceMicros != nil {
		return decimal.New(*p.PriceMicros, -6).String()
	}

	return notAvailable
}
