package services

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

const defaultCurrency = "USD"

// CatalogQuerier reads product and subscription definitions from the store catalog.
type CatalogQuerier interface {
	ListSubscriptions(ctx context.Context, packageName string) ([]models.RawSubscription, error)
	GetSubscription(ctx context.Context, packageName, productID string) (*models.RawSubscription, error)
	ListInAppProducts(ctx context.Context, packageName string) ([]models.RawInAppProduct, error)
}

// CatalogCache stores normalized catalogs. Implementations swallow their own errors.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]models.UnifiedProduct, bool)
	Set(ctx context.Context, key string, products []models.UnifiedProduct, ttl time.Duration)
}

type CatalogService struct {
	catalog     CatalogQuerier
	cache       CatalogCache
	cacheTTL    time.Duration
	concurrency int
	now         func() time.Time
}

func NewCatalogService(catalog CatalogQuerier, concurrency int) *CatalogService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &CatalogService{
		catalog:     catalog,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// WithCache enables caching of normalized subscription catalogs.
func (s *CatalogService) WithCache(cache CatalogCache, ttl time.Duration) *CatalogService {
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// ListInAppProducts returns the legacy in-app product list as the catalog reports it.
func (s *CatalogService) ListInAppProducts(ctx context.Context, packageName string) ([]models.RawInAppProduct, error) {
	products, err := s.catalog.ListInAppProducts(ctx, packageName)
	if err != nil {
		slog.Error("in-app product list failed", "operation", "list_products", "package_name", packageName, "error", err)
		return nil, err
	}
	if products == nil {
		products = []models.RawInAppProduct{}
	}
	return products, nil
}

// ListUnifiedCatalog returns one UnifiedProduct per (subscription, base plan), in
// subscription order then base plan order. A failed list call yields *NormalizationError.
func (s *CatalogService) ListUnifiedCatalog(ctx context.Context, packageName string) ([]models.UnifiedProduct, error) {
	cacheKey := "catalog:unified:" + packageName
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	subs, err := s.catalog.ListSubscriptions(ctx, packageName)
	if err != nil {
		slog.Error("subscription list failed", "operation", "list_unified_catalog", "package_name", packageName, "error", err)
		return nil, &NormalizationError{
			Message:   "Failed to fetch subscription plans",
			Details:   err.Error(),
			Timestamp: s.now().UTC(),
		}
	}

	detailed, degraded := s.fetchDetails(ctx, packageName, subs)

	products := make([]models.UnifiedProduct, 0, len(detailed))
	for _, sub := range detailed {
		products = append(products, unifySubscription(sub)...)
	}

	// a fallback record must not outlive the failed detail call
	if s.cache != nil && degraded == 0 {
		s.cache.Set(ctx, cacheKey, products, s.cacheTTL)
	}
	return products, nil
}

// ListOneTimeProducts normalizes managed in-app products through the legacy micros price path.
func (s *CatalogService) ListOneTimeProducts(ctx context.Context, packageName string) ([]models.UnifiedProduct, error) {
	raw, err := s.catalog.ListInAppProducts(ctx, packageName)
	if err != nil {
		slog.Warn("one-time product list failed", "operation", "list_one_time_products", "package_name", packageName, "error", err)
		return nil, err
	}

	products := make([]models.UnifiedProduct, 0, len(raw))
	for _, p := range raw {
		if p.PurchaseType != "managedUser" {
			continue
		}
		products = append(products, unifyInAppProduct(p))
	}
	return products, nil
}

// fetchDetails replaces each coarse record with its detailed version. A failed detail
// lookup keeps the coarse record for that product only; degraded counts those fallbacks.
func (s *CatalogService) fetchDetails(ctx context.Context, packageName string, subs []models.RawSubscription) (detailed []models.RawSubscription, degraded int) {
	detailed = make([]models.RawSubscription, len(subs))
	var fallbacks atomic.Int32

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range subs {
		g.Go(func() error {
			detail, err := s.catalog.GetSubscription(ctx, packageName, subs[i].ProductID)
			if err != nil || detail == nil {
				slog.Warn("subscription detail failed, using list data",
					"operation", "get_subscription",
					"package_name", packageName,
					"product_id", subs[i].ProductID,
					"error", err,
				)
				detailed[i] = subs[i]
				fallbacks.Add(1)
				return nil
			}
			detailed[i] = *detail
			return nil
		})
	}
	_ = g.Wait()

	return detailed, int(fallbacks.Load())
}

func unifySubscription(sub models.RawSubscription) []models.UnifiedProduct {
	if len(sub.BasePlans) == 0 {
		return nil
	}

	products := make([]models.UnifiedProduct, 0, len(sub.BasePlans))
	for _, bp := range sub.BasePlans {
		// each product owns its maps
		names, descriptions := collapseListings(sub.Listings)

		price, currency := pickPrice(bp)
		billingPeriod := bp.BillingPeriodDuration
		if billingPeriod == "" {
			billingPeriod = notAvailable
		}

		products = append(products, models.UnifiedProduct{
			ID:            sub.ProductID,
			Type:          models.ProductTypeSubscription,
			Price:         FormatPrice(price),
			CurrencyCode:  currency,
			BillingPeriod: billingPeriod,
			Names:         names,
			Descriptions:  descriptions,
			Metadata: models.ProductMetadata{
				BasePlanID:               bp.BasePlanID,
				Status:                   sub.Status,
				TaxAndComplianceSettings: sub.TaxAndComplianceSettings,
			},
		})
	}
	return products
}

func unifyInAppProduct(p models.RawInAppProduct) models.UnifiedProduct {
	currency := defaultCurrency
	if p.DefaultPrice != nil && p.DefaultPrice.CurrencyCode != "" {
		currency = p.DefaultPrice.CurrencyCode
	}
	names, descriptions := collapseListings(p.Listings)

	return models.UnifiedProduct{
		ID:            p.SKU,
		Type:          models.ProductTypeOneTime,
		Price:         FormatPrice(p.DefaultPrice),
		CurrencyCode:  currency,
		BillingPeriod: notAvailable,
		Names:         names,
		Descriptions:  descriptions,
		Metadata: models.ProductMetadata{
			Status: p.Status,
		},
	}
}

// pickPrice prefers the first regional offer, then the other-regions USD price.
func pickPrice(bp models.BasePlan) (*models.Price, string) {
	if len(bp.RegionalPriceOffers) > 0 && bp.RegionalPriceOffers[0].Price != nil {
		offer := bp.RegionalPriceOffers[0]
		return offer.Price, firstNonEmpty(offer.Price.CurrencyCode, offer.CurrencyCode, defaultCurrency)
	}
	if bp.OtherRegionsUSDPrice != nil {
		return bp.OtherRegionsUSDPrice, firstNonEmpty(bp.OtherRegionsUSDPrice.CurrencyCode, defaultCurrency)
	}
	return nil, defaultCurrency
}

// collapseListings keys listings by primary language subtag. Locale tags are visited in
// lexicographic order and the last one wins, so "pt-PT" beats "pt-BR".
func collapseListings(listings map[string]models.Listing) (map[string]string, map[string]string) {
	names := make(map[string]string, len(listings))
	descriptions := make(map[string]string, len(listings))

	for _, tag := range slices.Sorted(maps.Keys(listings)) {
		lang := primarySubtag(tag)
		names[lang] = listings[tag].Title
		descriptions[lang] = listings[tag].Description
	}
	return names, descriptions
}

func primarySubtag(tag string) string {
	if t, err := language.Raw.Parse(tag); err == nil {
		if base, _, _ := t.Raw(); base.String() != "und" {
			return base.String()
		}
	}
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
