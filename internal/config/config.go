package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultAccessMinutes  = 15
	defaultRefreshMinutes = 43200 // 30 days
)

// Config carries everything resolved from the environment at startup.
// An empty JWTSecret disables token enforcement entirely.
type Config struct {
	Port       string
	DBBackend  string
	DBPath     string
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func Load() Config {
	return Config{
		Port:       getenv("PORT", "3000"),
		DBBackend:  getenv("DB_BACKEND", "sqlite"),
		DBPath:     getenv("LEXIO_DB_PATH", "lexio.db"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		AccessTTL:  minutes("JWT_ACCESS_MINUTES", defaultAccessMinutes),
		RefreshTTL: minutes("JWT_REFRESH_MINUTES", defaultRefreshMinutes),
	}
}

// AuthEnabled reports whether token checks are enforced at all.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func minutes(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return time.Duration(fallback) * time.Minute
}
