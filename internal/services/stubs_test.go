package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
	"gorm.io/datatypes"
)

type stubCatalog struct {
	mu          sync.Mutex
	subs        []models.RawSubscription
	listErr     error
	details     map[string]models.RawSubscription
	detailErr   map[string]error
	inApp       []models.RawInAppProduct
	inAppErr    error
	listCalls   int
	detailCalls int
}

func (s *stubCatalog) ListSubscriptions(context.Context, string) ([]models.RawSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	return s.subs, s.listErr
}

func (s *stubCatalog) GetSubscription(_ context.Context, _ string, productID string) (*models.RawSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailCalls++
	if err := s.detailErr[productID]; err != nil {
		return nil, err
	}
	if d, ok := s.details[productID]; ok {
		return &d, nil
	}
	for _, sub := range s.subs {
		if sub.ProductID == productID {
			return &sub, nil
		}
	}
	return nil, nil
}

func (s *stubCatalog) ListInAppProducts(context.Context, string) ([]models.RawInAppProduct, error) {
	return s.inApp, s.inAppErr
}

type memoryCache struct {
	entries map[string][]models.UnifiedProduct
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]models.UnifiedProduct{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]models.UnifiedProduct, bool) {
	p, ok := c.entries[key]
	return p, ok
}

func (c *memoryCache) Set(_ context.Context, key string, products []models.UnifiedProduct, _ time.Duration) {
	c.sets++
	c.entries[key] = products
}

type stubAuthority struct {
	record *models.PurchaseRecord
	err    error
	calls  int
}

func (a *stubAuthority) GetProductPurchase(context.Context, string, string, string) (*models.PurchaseRecord, error) {
	a.calls++
	return a.record, a.err
}

type stubGranter struct {
	err   error
	calls int
	last  json.RawMessage
}

func (g *stubGranter) Grant(_ context.Context, _ string, purchaseInfo json.RawMessage) error {
	g.calls++
	g.last = purchaseInfo
	return g.err
}

// memoryStore mimics the repository: SetPremium touches only existing rows.
type memoryStore struct {
	mu         sync.Mutex
	rows       map[string]models.Entitlement
	setErr     error
	createErr  error
	setCalls   int
	createHook func()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: map[string]models.Entitlement{}}
}

func (m *memoryStore) SetPremium(_ context.Context, profileID string, purchaseInfo datatypes.JSON) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setErr != nil {
		return false, m.setErr
	}
	row, ok := m.rows[profileID]
	if !ok {
		return false, nil
	}
	row.IsPremium = true
	row.PurchaseInfo = purchaseInfo
	m.rows[profileID] = row
	return true, nil
}

func (m *memoryStore) Create(_ context.Context, e *models.Entitlement) error {
	if m.createHook != nil {
		m.createHook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.rows[e.ProfileID]; ok {
		return ErrEntitlementExists
	}
	m.rows[e.ProfileID] = *e
	return nil
}

func int64p(v int64) *int64 { return &v }
