package playstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
	androidpublisher "google.golang.org/api/androidpublisher/v3"
)

func (c *Client) ListSubscriptions(ctx context.Context, packageName string) ([]models.RawSubscription, error) {
	var out []models.RawSubscription
	err := c.svc.Monetization.Subscriptions.List(packageName).
		Pages(ctx, func(resp *androidpublisher.ListSubscriptionsResponse) error {
			for _, s := range resp.Subscriptions {
				out = append(out, toRawSubscription(s))
			}
			return nil
		})
	if err != nil {
		return nil, toAuthorityError(fmt.Errorf("monetization.subscriptions.list: %w", err), 0)
	}
	return out, nil
}

func (c *Client) GetSubscription(ctx context.Context, packageName, productID string) (*models.RawSubscription, error) {
	s, err := c.svc.Monetization.Subscriptions.Get(packageName, productID).Context(ctx).Do()
	if err != nil {
		return nil, toAuthorityError(fmt.Errorf("monetization.subscriptions.get %s: %w", productID, err), 0)
	}
	raw := toRawSubscription(s)
	return &raw, nil
}

func (c *Client) ListInAppProducts(ctx context.Context, packageName string) ([]models.RawInAppProduct, error) {
	var out []models.RawInAppProduct
	token := ""
	for {
		call := c.svc.Inappproducts.List(packageName).Context(ctx)
		if token != "" {
			call = call.Token(token)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, toAuthorityError(fmt.Errorf("inappproducts.list: %w", err), 0)
		}
		for _, p := range resp.Inappproduct {
			out = append(out, toRawInAppProduct(p))
		}
		if resp.TokenPagination == nil || resp.TokenPagination.NextPageToken == "" {
			return out, nil
		}
		token = resp.TokenPagination.NextPageToken
	}
}

func toRawSubscription(s *androidpublisher.Subscription) models.RawSubscription {
	raw := models.RawSubscription{
		ProductID: s.ProductId,
		Status:    subscriptionStatus(s),
		Listings:  make(map[string]models.Listing, len(s.Listings)),
		BasePlans: make([]models.BasePlan, 0, len(s.BasePlans)),
	}
	for _, l := range s.Listings {
		if l == nil {
			continue
		}
		raw.Listings[l.LanguageCode] = models.Listing{Title: l.Title, Description: l.Description}
	}
	for _, bp := range s.BasePlans {
		if bp == nil {
			continue
		}
		raw.BasePlans = append(raw.BasePlans, toBasePlan(bp))
	}
	if s.TaxAndComplianceSettings != nil {
		if b, err := json.Marshal(s.TaxAndComplianceSettings); err == nil {
			raw.TaxAndComplianceSettings = b
		}
	}
	return raw
}

func toBasePlan(bp *androidpublisher.BasePlan) models.BasePlan {
	out := models.BasePlan{
		BasePlanID: bp.BasePlanId,
		State:      strings.ToLower(bp.State),
	}
	if bp.AutoRenewingBasePlanType != nil {
		out.BillingPeriodDuration = bp.AutoRenewingBasePlanType.BillingPeriodDuration
	}
	for _, rc := range bp.RegionalConfigs {
		if rc == nil {
			continue
		}
		offer := models.RegionalPriceOffer{
			Price:  toPrice(rc.Price),
			Region: rc.RegionCode,
		}
		if rc.Price != nil {
			offer.CurrencyCode = rc.Price.CurrencyCode
		}
		out.RegionalPriceOffers = append(out.RegionalPriceOffers, offer)
	}
	if bp.OtherRegionsConfig != nil {
		out.OtherRegionsUSDPrice = toPrice(bp.OtherRegionsConfig.UsdPrice)
	}
	return out
}

// subscriptionStatus derives active/inactive/draft from the archive flag and base plan states.
func subscriptionStatus(s *androidpublisher.Subscription) string {
	if s.Archived {
		return models.SubscriptionStatusInactive
	}
	drafts := 0
	for _, bp := range s.BasePlans {
		if bp == nil {
			continue
		}
		switch bp.State {
		case "ACTIVE":
			return models.SubscriptionStatusActive
		case "DRAFT":
			drafts++
		}
	}
	if drafts == len(s.BasePlans) {
		return models.SubscriptionStatusDraft
	}
	return models.SubscriptionStatusInactive
}

func toPrice(m *androidpublisher.Money) *models.Price {
	if m == nil {
		return nil
	}
	units, nanos := m.Units, m.Nanos
	return &models.Price{Units: &units, Nanos: &nanos, CurrencyCode: m.CurrencyCode}
}

func toRawInAppProduct(p *androidpublisher.InAppProduct) models.RawInAppProduct {
	raw := models.RawInAppProduct{
		SKU:                p.Sku,
		Status:             p.Status,
		PurchaseType:       p.PurchaseType,
		DefaultLanguage:    p.DefaultLanguage,
		DefaultPrice:       toLegacyPrice(p.DefaultPrice),
		SubscriptionPeriod: p.SubscriptionPeriod,
	}
	if len(p.Listings) > 0 {
		raw.Listings = make(map[string]models.Listing, len(p.Listings))
		for locale, l := range p.Listings {
			raw.Listings[locale] = models.Listing{Title: l.Title, Description: l.Description}
		}
	}
	return raw
}

// toLegacyPrice parses the string micros field. An unparseable amount keeps only the currency.
func toLegacyPrice(p *androidpublisher.Price) *models.Price {
	if p == nil {
		return nil
	}
	out := &models.Price{CurrencyCode: p.Currency}
	if micros, err := strconv.ParseInt(p.PriceMicros, 10, 64); err == nil {
		out.PriceMicros = &micros
	}
	return out
}
