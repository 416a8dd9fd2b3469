package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/premium-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisCatalogCache stores normalized catalogs as JSON strings.
type RedisCatalogCache struct {
	client *redis.Client
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewRedisCatalogCache(client *redis.Client) *RedisCatalogCache {
	return &RedisCatalogCache{client: client}
}

func (c *RedisCatalogCache) Get(ctx context.Context, key string) ([]models.UnifiedProduct, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("catalog cache read failed", "operation", "catalog_cache_get", "key", key, "error", err)
		}
		return nil, false
	}

	var products []models.UnifiedProduct
	if err := json.Unmarshal(data, &products); err != nil {
		slog.Warn("catalog cache entry unreadable", "operation", "catalog_cache_get", "key", key, "error", err)
		return nil, false
	}
	return products, true
}

func (c *RedisCatalogCache) Set(ctx context.Context, key string, products []models.UnifiedProduct, ttl time.Duration) {
	data, err := json.Marshal(products)
	if err != nil {
		slog.Warn("catalog cache encode failed", "operation", "catalog_cache_set", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Warn("catalog cache write failed", "operation", "catalog_cache_set", "key", key, "error", err)
	}
}

func (c *RedisCatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
