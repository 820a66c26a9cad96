package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, defaultServerAddress, cfg.ServerAddress)
	assert.Equal(t, filepath.Join(dir, "credentials.db"), cfg.DataPath)
	assert.Equal(t, filepath.Join(dir, "token"), cfg.TokenPath)
	assert.Equal(t, filepath.Join(dir, "device.key"), cfg.DeviceKeyPath)
	assert.Equal(t, 5*time.Second, cfg.StorageTimeout)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.InitRetries)
	assert.False(t, cfg.EnableTLS)
	assert.True(t, cfg.IsLocal())
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("SERVER_ADDRESS", "notes.example.com")
	t.Setenv("ENABLE_TLS", "true")
	t.Setenv("DATA_PATH", filepath.Join(dir, "other.db"))
	t.Setenv("STORAGE_TIMEOUT_SECONDS", "2")
	t.Setenv("INIT_RETRIES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "notes.example.com", cfg.ServerAddress)
	assert.True(t, cfg.EnableTLS)
	assert.Equal(t, filepath.Join(dir, "other.db"), cfg.DataPath)
	assert.Equal(t, 2*time.Second, cfg.StorageTimeout)
	assert.Equal(t, 5, cfg.InitRetries)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "zero storage timeout", key: "STORAGE_TIMEOUT_SECONDS", val: "0"},
		{name: "zero request timeout", key: "REQUEST_TIMEOUT_SECONDS", val: "0"},
		{name: "zero retries", key: "INIT_RETRIES", val: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Setenv("CONFIG_DIR", t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
