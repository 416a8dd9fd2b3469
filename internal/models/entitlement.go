package models

import (
	"time"

	"gorm.io/datatypes"
)

// Entitlement is the premium grant owned by an external profile identity.
type Entitlement struct {
	ProfileID    string         `gorm:"primaryKey;size:255" json:"profileId"`
	IsPremium    bool           `gorm:"not null;default:false" json:"isPremium"`
	PurchaseInfo datatypes.JSON `json:"purchaseInfo"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (Entitlement) TableName() string {
	return "entitlements"
}
