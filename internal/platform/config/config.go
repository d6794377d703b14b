package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/srgjo27/hall_booking/internal/platform/database"
)

type Config struct {
	DB                   database.Config
	RedisHost            string
	RedisPort            string
	HTTPPort             string
	LogLevel             string
	CORSOrigins          []string
	AvailabilityDebounce time.Duration
	WizardIdleTTL        time.Duration
	DraftTTL             time.Duration
	DiscountCacheTTL     time.Duration
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// Load reads the given .env files, when present, and then the environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", f, err)
			}
		}
	}

	cfg := Config{
		DB: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "hall_booking"),
		},
		RedisHost:   getEnv("REDIS_HOST", "localhost"),
		RedisPort:   getEnv("REDIS_PORT", "6379"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGIN", "http://localhost:4200")),
	}

	var err error
	if cfg.AvailabilityDebounce, err = getDuration("AVAILABILITY_DEBOUNCE", 300*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.WizardIdleTTL, err = getDuration("WIZARD_IDLE_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.DraftTTL, err = getDuration("DRAFT_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.DiscountCacheTTL, err = getDuration("DISCOUNT_CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
