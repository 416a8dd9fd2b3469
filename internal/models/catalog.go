package models

import "encoding/json"

type ProductType string

const (
	ProductTypeSubscription ProductType = "subscription"
	ProductTypeOneTime      ProductType = "one_time"
)

// Subscription status as reported by the catalog.
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusInactive = "inactive"
	SubscriptionStatusDraft    = "draft"
)

// Price is either the fixed-point form (Units + Nanos) or the legacy micros form.
// Nil fields mean "absent".
type Price struct {
	Units        *int64 `json:"units,omitempty"`
	Nanos        *int64 `json:"nanos,omitempty"`
	PriceMicros  *int64 `json:"priceMicros,omitempty"`
	CurrencyCode string `json:"currencyCode,omitempty"`
}

type Listing struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type RegionalPriceOffer struct {
	Price        *Price `json:"price,omitempty"`
	CurrencyCode string `json:"currencyCode,omitempty"`
	Region       string `json:"region"`
}

type BasePlan struct {
	BasePlanID            string               `json:"basePlanId"`
	State                 string               `json:"state,omitempty"`
	BillingPeriodDuration string               `json:"billingPeriodDuration,omitempty"`
	RegionalPriceOffers   []RegionalPriceOffer `json:"regionalPriceOffers,omitempty"`
	OtherRegionsUSDPrice  *Price               `json:"otherRegionsUsdPrice,omitempty"`
}

// RawSubscription is a catalog subscription already detached from the SDK types.
type RawSubscription struct {
	ProductID                string             `json:"productId"`
	Status                   string             `json:"status"`
	Listings                 map[string]Listing `json:"listings"`
	BasePlans                []BasePlan         `json:"basePlans"`
	TaxAndComplianceSettings json.RawMessage    `json:"taxAndComplianceSettings,omitempty"`
}

type RawInAppProduct struct {
	SKU                string             `json:"sku"`
	Status             string             `json:"status"`
	PurchaseType       string             `json:"purchaseType"`
	DefaultLanguage    string             `json:"defaultLanguage,omitempty"`
	DefaultPrice       *Price             `json:"defaultPrice,omitempty"`
	Listings           map[string]Listing `json:"listings,omitempty"`
	SubscriptionPeriod string             `json:"subscriptionPeriod,omitempty"`
}

type ProductMetadata struct {
	BasePlanID               string          `json:"basePlanId,omitempty"`
	Status                   string          `json:"status"`
	TaxAndComplianceSettings json.RawMessage `json:"taxAndComplianceSettings,omitempty"`
}

type UnifiedProduct struct {
	ID            string            `json:"id"`
	Type          ProductType       `json:"type"`
	Price         string            `json:"price"`
	CurrencyCode  string            `json:"currencyCode"`
	BillingPeriod string            `json:"billingPeriod"`
	Names         map[string]string `json:"names"`
	Descriptions  map[string]string `json:"descriptions"`
	Metadata      ProductMetadata   `json:"metadata"`
}
