package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/services"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EntitlementRepository persists entitlements through GORM.
// The *gorm.DB must be opened with TranslateError so duplicate keys surface as gorm.ErrDuplicatedKey.
type EntitlementRepository struct {
	db *gorm.DB
}

func NewEntitlementRepository(db *gorm.DB) *EntitlementRepository {
	return &EntitlementRepository{db: db}
}

func (r *EntitlementRepository) SetPremium(ctx context.Context, profileID string, purchaseInfo datatypes.JSON) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Entitlement{}).
		Where("profile_id = ?", profileID).
		Updates(map[string]interface{}{
			"is_premium":    true,
			"purchase_info": purchaseInfo,
		})
	if result.Error != nil {
		return false, fmt.Errorf("update entitlement: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *EntitlementRepository) Create(ctx context.Context, entitlement *models.Entitlement) error {
	if err := r.db.WithContext(ctx).Create(entitlement).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return services.ErrEntitlementExists
		}
		return fmt.Errorf("create entitlement: %w", err)
	}
	return nil
}

// Get returns the entitlement for profileID, or gorm.ErrRecordNotFound.
func (r *EntitlementRepository) Get(ctx context.Context, profileID string) (*models.Entitlement, error) {
	var entitlement models.Entitlement
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&entitlement).Error; err != nil {
		return nil, err
	}
	return &entitlement, nil
}
