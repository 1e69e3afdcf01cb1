// Package config reads site and dev store settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/AdamBeresnev/game-hub/internal/cosmic"
)

type Config struct {
	BucketSlug string
	ReadKey    string
	APIURL     string
	Timeout    time.Duration

	WebAddr string

	DevStoreAddr     string
	DevStoreDB       string
	DevStoreFixtures string
}

// Load reads the environment. Call godotenv.Load first to pick up a .env
// file.
func Load() (*Config, error) {
	timeout, err := durationOrDefault("COSMIC_TIMEOUT", cosmic.DefaultTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BucketSlug: os.Getenv("COSMIC_BUCKET_SLUG"),
		ReadKey:    os.Getenv("COSMIC_READ_KEY"),
		APIURL:     envOrDefault("COSMIC_API_URL", cosmic.DefaultBaseURL),
		Timeout:    timeout,

		WebAddr: envOrDefault("WEB_ADDR", ":8080"),

		DevStoreAddr:     envOrDefault("DEVSTORE_ADDR", ":8090"),
		DevStoreDB:       envOrDefault("DEVSTORE_DB", "devstore.db"),
		DevStoreFixtures: envOrDefault("DEVSTORE_FIXTURES", "fixtures/content.yaml"),
	}

	if cfg.BucketSlug == "" {
		return nil, fmt.Errorf("COSMIC_BUCKET_SLUG must be set")
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}
