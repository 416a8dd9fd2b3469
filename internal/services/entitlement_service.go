package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
	"gorm.io/datatypes"
)

// ErrEntitlementExists is returned by EntitlementStore.Create when the profile already has a record.
var ErrEntitlementExists = errors.New("entitlement already exists")

// EntitlementStore is the keyed record store behind premium grants.
type EntitlementStore interface {
	// SetPremium updates the record for profileID and reports whether one matched.
	SetPremium(ctx context.Context, profileID string, purchaseInfo datatypes.JSON) (bool, error)
	Create(ctx context.Context, entitlement *models.Entitlement) error
}

type EntitlementService struct {
	store EntitlementStore
	now   func() time.Time
}

func NewEntitlementService(store EntitlementStore) *EntitlementService {
	return &EntitlementService{store: store, now: time.Now}
}

// Grant marks profileID as premium with the given purchase payload, creating the
// record on first use. Repeating the call converges to the same state.
func (s *EntitlementService) Grant(ctx context.Context, profileID string, purchaseInfo json.RawMessage) error {
	info := datatypes.JSON(purchaseInfo)

	matched, err := s.store.SetPremium(ctx, profileID, info)
	if err != nil {
		return s.fail(profileID, err)
	}
	if matched {
		slog.Info("granted premium access", "operation", "grant_premium", "profile_id", profileID)
		return nil
	}

	err = s.store.Create(ctx, &models.Entitlement{
		ProfileID:    profileID,
		IsPremium:    true,
		PurchaseInfo: info,
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, ErrEntitlementExists) {
		// lost a race with a concurrent first grant
		if _, err = s.store.SetPremium(ctx, profileID, info); err != nil {
			return s.fail(profileID, err)
		}
		slog.Info("granted premium access", "operation", "grant_premium", "profile_id", profileID)
		return nil
	}
	if err != nil {
		return s.fail(profileID, err)
	}

	slog.Info("new profile created with premium access", "operation", "grant_premium", "profile_id", profileID)
	return nil
}

func (s *EntitlementService) fail(profileID string, err error) error {
	slog.Error("error granting premium access", "operation", "grant_premium", "profile_id", profileID, "error", err)
	return &GrantError{ProfileID: profileID, Err: err}
}
