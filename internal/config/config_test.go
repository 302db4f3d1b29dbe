package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycastapp/skycast/internal/config"
	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/units"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SKYCAST_OWM_API_KEY", "test-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "test-key", cfg.OWM.APIKey)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.OWM.BaseURL)
	assert.Equal(t, "https://api.openweathermap.org/geo/1.0", cfg.OWM.GeoURL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceWindow)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, i18n.Korean, cfg.DefaultLanguage())
	assert.Equal(t, units.Metric, cfg.DefaultUnit())
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("SKYCAST_OWM_API_KEY", "")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SKYCAST_OWM_API_KEY", "k")
	t.Setenv("SKYCAST_PORT", "9090")
	t.Setenv("SKYCAST_REDIS_ADDR", "localhost:6379")
	t.Setenv("SKYCAST_LANGUAGE", "en")
	t.Setenv("SKYCAST_UNIT", "imperial")
	t.Setenv("SKYCAST_DEBOUNCE_WINDOW", "150ms")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 150*time.Millisecond, cfg.DebounceWindow)
	assert.Equal(t, i18n.English, cfg.DefaultLanguage())
	assert.Equal(t, units.Imperial, cfg.DefaultUnit())
}
