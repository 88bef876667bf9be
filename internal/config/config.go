package config

import (
	"os"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
	Domain       string

	// Fallback geocoder for cities missing from the static table.
	GeocoderBaseURL string
	GeocoderTimeout time.Duration
	GeocodeCacheTTL time.Duration

	ReconcileInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  getDurationEnv("JWT_ACCESS_EXPIRY", 15*time.Minute),
		JWTRefreshExpiry: getDurationEnv("JWT_REFRESH_EXPIRY", 7*24*time.Hour),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		Domain:       getEnv("DOMAIN", "localhost:5173"),

		GeocoderBaseURL: getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderTimeout: getDurationEnv("GEOCODER_TIMEOUT", 5*time.Second),
		GeocodeCacheTTL: getDurationEnv("GEOCODE_CACHE_TTL", 24*time.Hour),

		ReconcileInterval: getDurationEnv("RECONCILE_INTERVAL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
