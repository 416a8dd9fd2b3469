package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Google Play
	PackageName        string
	CredentialsFile    string
	ServiceAccountJSON string
	GooglePlayTimeout  time.Duration
	CatalogConcurrency int
	CatalogCacheTTL    time.Duration
	RedisURL           string

	// Admin (debug endpoints)
	JWTSecret  string
	AdminToken string

	// Server
	Port             string
	CORSOrigins      string
	RateLimitPerMin  int
	LogRetentionDays int
	AppEnv           string
	SentryDSN        string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "premium_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		PackageName:        getEnv("GOOGLE_PLAY_PACKAGE_NAME", "com.mistic.numerology"),
		CredentialsFile:    getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		ServiceAccountJSON: getEnv("GOOGLE_PLAY_SERVICE_ACCOUNT_JSON", ""),
		GooglePlayTimeout:  parseDuration(getEnv("GOOGLE_PLAY_TIMEOUT", "15s"), 15*time.Second),
		CatalogConcurrency: parseInt(getEnv("CATALOG_DETAIL_CONCURRENCY", "8"), 8),
		CatalogCacheTTL:    parseDuration(getEnv("CATALOG_CACHE_TTL", "5m"), 5*time.Minute),
		RedisURL:           getEnv("REDIS_URL", ""),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		AdminToken: getEnv("ADMIN_TOKEN", ""),

		Port:             getEnv("PORT", "3000"),
		CORSOrigins:      getEnv("CORS_ORIGINS", "*"),
		RateLimitPerMin:  parseInt(getEnv("RATE_LIMIT_PER_MIN", "60"), 60),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
		AppEnv:           getEnv("APP_ENV", "development"),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// DebugEnabled reports whether any admin credential is configured.
func (c *Config) DebugEnabled() bool {
	return c.AdminToken != "" || c.JWTSecret != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
