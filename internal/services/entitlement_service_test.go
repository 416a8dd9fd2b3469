package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestEntitlementService_Grant(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first grant creates the record", func(t *testing.T) {
		store := newMemoryStore()
		svc := NewEntitlementService(store)
		svc.now = fixedClock(created)

		require.NoError(t, svc.Grant(ctx, "p1", purchasedPayload))

		row := store.rows["p1"]
		assert.True(t, row.IsPremium)
		assert.JSONEq(t, string(purchasedPayload), string(row.PurchaseInfo))
		assert.Equal(t, created, row.CreatedAt)
	})

	t.Run("repeat grant is idempotent and keeps createdAt", func(t *testing.T) {
		store := newMemoryStore()
		svc := NewEntitlementService(store)
		svc.now = fixedClock(created)
		require.NoError(t, svc.Grant(ctx, "p1", purchasedPayload))

		svc.now = fixedClock(created.Add(48 * time.Hour))
		next := json.RawMessage(`{"orderId":"GPA.5678"}`)
		require.NoError(t, svc.Grant(ctx, "p1", next))
		require.NoError(t, svc.Grant(ctx, "p1", next))

		require.Len(t, store.rows, 1)
		row := store.rows["p1"]
		assert.True(t, row.IsPremium)
		assert.JSONEq(t, string(next), string(row.PurchaseInfo))
		assert.Equal(t, created, row.CreatedAt)
	})

	t.Run("lost create race falls back to update", func(t *testing.T) {
		store := newMemoryStore()
		store.createHook = func() {
			store.mu.Lock()
			store.rows["p1"] = models.Entitlement{ProfileID: "p1", CreatedAt: created}
			store.mu.Unlock()
		}
		svc := NewEntitlementService(store)

		require.NoError(t, svc.Grant(ctx, "p1", purchasedPayload))
		assert.Equal(t, 2, store.setCalls)
		assert.True(t, store.rows["p1"].IsPremium)
		assert.Equal(t, created, store.rows["p1"].CreatedAt)
	})

	t.Run("store failure is a GrantError", func(t *testing.T) {
		store := newMemoryStore()
		store.setErr = errors.New("connection refused")
		svc := NewEntitlementService(store)

		err := svc.Grant(ctx, "p1", purchasedPayload)
		var gerr *GrantError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, "p1", gerr.ProfileID)
		assert.ErrorIs(t, err, store.setErr)
	})

	t.Run("create failure is a GrantError", func(t *testing.T) {
		store := newMemoryStore()
		store.createErr = errors.New("disk full")
		svc := NewEntitlementService(store)

		err := svc.Grant(ctx, "p1", purchasedPayload)
		var gerr *GrantError
		require.ErrorAs(t, err, &gerr)
		assert.Empty(t, store.rows)
	})
}
