package config

import (
	"os"
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

	// JWT session tokens
	JWTSecret string
	JWTExpiry time.Duration

	// Content API (TMDB-compatible)
	ContentAPIKey     string
	ContentAPIBaseURL string
	ContentAPITimeout time.Duration

	// Seed account created on first startup
	SeedName     string
	SeedEmail    string
	SeedPassword string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "moviedeck_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),

		ContentAPIKey:     getEnv("CONTENT_API_KEY", ""),
		ContentAPIBaseURL: getEnv("CONTENT_API_URL", "https://api.themoviedb.org/3"),
		ContentAPITimeout: parseDuration(getEnv("CONTENT_API_TIMEOUT", "10s"), 10*time.Second),

		SeedName:     getEnv("SEED_NAME", "Demo User"),
		SeedEmail:    getEnv("SEED_EMAIL", "demo@moviedeck.app"),
		SeedPassword: getEnv("SEED_PASSWORD", "demo123"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
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

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
