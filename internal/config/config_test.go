package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "admin-pw")
	t.Setenv("PRODUCT_SECRET", "product-pw")
	t.Setenv("JWT_SECRET", "signing-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "inventory", cfg.Remote.Key)
	assert.Equal(t, "data/snapshot.json", cfg.Local.SnapshotPath)
	assert.Equal(t, 2*time.Second, cfg.Sync.PushDebounce)
	assert.Empty(t, cfg.Remote.BaseURL, "remote sync is off until a base URL is configured")
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("REMOTE_BASE_URL", "https://store.example.com")
	t.Setenv("REMOTE_TOKEN", "remote-token")
	t.Setenv("PUSH_DEBOUNCE", "500ms")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "https://store.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Sync.PushDebounce)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "")
	t.Setenv("PRODUCT_SECRET", "")
	t.Setenv("JWT_SECRET", "signing-key")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadRejectsBadDebounce(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PUSH_DEBOUNCE", "soon")

	_, err := Load("")
	assert.Error(t, err)
}
