package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8807, cfg.Port)
	assert.Equal(t, "table", cfg.Session)
	assert.Empty(t, cfg.Folders)
	assert.Empty(t, cfg.HostAddr)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SLIDECASTER_PORT", "9001")
	t.Setenv("SLIDECASTER_SESSION", "friday-game")
	t.Setenv("SLIDECASTER_FOLDERS", "/maps:/tokens")
	t.Setenv("SLIDECASTER_HOST", "192.168.1.4:9001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, "friday-game", cfg.Session)
	assert.Equal(t, []string{"/maps", "/tokens"}, cfg.Folders)
	assert.Equal(t, "192.168.1.4:9001", cfg.HostAddr)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("SLIDECASTER_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}
