package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"GOOGLE_PLAY_PACKAGE_NAME", "PORT", "CATALOG_CACHE_TTL", "JWT_SECRET", "ADMIN_TOKEN", "RATE_LIMIT_PER_MIN"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "com.mistic.numerology", cfg.PackageName)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 60, cfg.RateLimitPerMin)
	assert.False(t, cfg.DebugEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GOOGLE_PLAY_PACKAGE_NAME", "com.example.app")
	t.Setenv("GOOGLE_PLAY_TIMEOUT", "3s")
	t.Setenv("CATALOG_DETAIL_CONCURRENCY", "not-a-number")
	t.Setenv("ADMIN_TOKEN", "secret")

	cfg := Load()
	assert.Equal(t, "com.example.app", cfg.PackageName)
	assert.Equal(t, 3*time.Second, cfg.GooglePlayTimeout)
	assert.Equal(t, 8, cfg.CatalogConcurrency)
	assert.True(t, cfg.DebugEnabled())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
