package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COSMIC_BUCKET_SLUG", "game-hub")
	t.Setenv("COSMIC_READ_KEY", "")
	t.Setenv("COSMIC_API_URL", "")
	t.Setenv("COSMIC_TIMEOUT", "")
	t.Setenv("WEB_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "game-hub", cfg.BucketSlug)
	assert.Equal(t, "https://api.cosmicjs.com/v3", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, ":8080", cfg.WebAddr)
	assert.Equal(t, "fixtures/content.yaml", cfg.DevStoreFixtures)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COSMIC_BUCKET_SLUG", "game-hub")
	t.Setenv("COSMIC_READ_KEY", "rk")
	t.Setenv("COSMIC_API_URL", "http://localhost:8090/v3")
	t.Setenv("COSMIC_TIMEOUT", "750ms")
	t.Setenv("DEVSTORE_DB", ":memory:")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "rk", cfg.ReadKey)
	assert.Equal(t, "http://localhost:8090/v3", cfg.APIURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
	assert.Equal(t, ":memory:", cfg.DevStoreDB)
}

func TestLoadRequiresBucket(t *testing.T) {
	t.Setenv("COSMIC_BUCKET_SLUG", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COSMIC_BUCKET_SLUG")
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("COSMIC_BUCKET_SLUG", "game-hub")

	for _, v := range []string{"soon", "-1s", "0s"} {
		t.Setenv("COSMIC_TIMEOUT", v)
		_, err := Load()
		assert.Error(t, err, v)
	}
}
