package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	// when
	cfg, err := Load()
	// then
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "full", cfg.Console.Variant)
	assert.False(t, cfg.Diagnostics.Enabled)
	assert.Equal(t, "localhost:6060", cfg.Diagnostics.Addr)
	assert.Equal(t, 5*time.Second, cfg.Diagnostics.ReadHeaderTimeout)
	assert.Equal(t, 5*time.Second, cfg.Shutdown.Timeout)
}

func Test_Load_EnvOverrides(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	t.Setenv("STOCK_CONSOLE_VARIANT", "basic")
	t.Setenv("STOCK_LOG_LEVEL", "debug")
	t.Setenv("STOCK_DIAGNOSTICS_ENABLED", "true")
	t.Setenv("STOCK_DIAGNOSTICS_TIMEOUT", "2s")
	// when
	cfg, err := Load()
	// then
	require.NoError(t, err)
	assert.Equal(t, "basic", cfg.Console.Variant)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Diagnostics.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Diagnostics.ReadHeaderTimeout)
}

func Test_Load_InvalidVariant(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	t.Setenv("STOCK_CONSOLE_VARIANT", "fancy")
	// when
	_, err := Load()
	// then
	assert.ErrorContains(t, err, "invalid console variant")
}

func Test_Config_String(t *testing.T) {
	cfg := Config{}
	cfg.Log.Level = "info"
	cfg.Console.Variant = "basic"
	cfg.Shutdown.Timeout = time.Second

	s := cfg.String()

	assert.Contains(t, s, "level: info")
	assert.Contains(t, s, "variant: basic")
	assert.Contains(t, s, "timeout: 1s")
}
