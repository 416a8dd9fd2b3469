package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	// each :memory: connection is its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Entitlement{}))
	return db
}

func TestEntitlementRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("SetPremium on a missing profile matches nothing", func(t *testing.T) {
		repo := NewEntitlementRepository(setupTestDB(t))

		matched, err := repo.SetPremium(ctx, "nobody", datatypes.JSON(`{}`))
		require.NoError(t, err)
		assert.False(t, matched)

		_, err = repo.Get(ctx, "nobody")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Create then SetPremium", func(t *testing.T) {
		repo := NewEntitlementRepository(setupTestDB(t))
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

		require.NoError(t, repo.Create(ctx, &models.Entitlement{
			ProfileID:    "p1",
			IsPremium:    true,
			PurchaseInfo: datatypes.JSON(`{"orderId":"A"}`),
			CreatedAt:    created,
		}))

		matched, err := repo.SetPremium(ctx, "p1", datatypes.JSON(`{"orderId":"B"}`))
		require.NoError(t, err)
		assert.True(t, matched)

		got, err := repo.Get(ctx, "p1")
		require.NoError(t, err)
		assert.True(t, got.IsPremium)
		assert.JSONEq(t, `{"orderId":"B"}`, string(got.PurchaseInfo))
		assert.True(t, created.Equal(got.CreatedAt))
	})

	t.Run("duplicate Create reports ErrEntitlementExists", func(t *testing.T) {
		repo := NewEntitlementRepository(setupTestDB(t))
		e := &models.Entitlement{ProfileID: "p1", IsPremium: true}
		require.NoError(t, repo.Create(ctx, e))

		err := repo.Create(ctx, &models.Entitlement{ProfileID: "p1", IsPremium: true})
		assert.True(t, errors.Is(err, services.ErrEntitlementExists))
	})

	t.Run("grant through the service", func(t *testing.T) {
		repo := NewEntitlementRepository(setupTestDB(t))
		svc := services.NewEntitlementService(repo)

		require.NoError(t, svc.Grant(ctx, "p2", []byte(`{"orderId":"C"}`)))
		first, err := repo.Get(ctx, "p2")
		require.NoError(t, err)

		require.NoError(t, svc.Grant(ctx, "p2", []byte(`{"orderId":"D"}`)))
		second, err := repo.Get(ctx, "p2")
		require.NoError(t, err)

		assert.True(t, second.IsPremium)
		assert.JSONEq(t, `{"orderId":"D"}`, string(second.PurchaseInfo))
		assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	})
}
