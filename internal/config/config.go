// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/skycastapp/skycast/internal/i18n"
	"github.com/skycastapp/skycast/internal/units"
)

// ErrMissingAPIKey is returned when no OpenWeatherMap key is configured.
var ErrMissingAPIKey = errors.New("config: SKYCAST_OWM_API_KEY is required")

// Config holds all runtime settings. Every field binds to a SKYCAST_*
// environment variable; nested keys use underscores (SKYCAST_OWM_API_KEY).
type Config struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`

	OWM struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
		GeoURL  string `mapstructure:"geo_url"`
	} `mapstructure:"owm"`

	Redis struct {
		// Addr is the redis host:port; empty selects the in-memory store.
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	// Language and Unit are the defaults a fresh session starts with.
	Language string `mapstructure:"language"`
	Unit     string `mapstructure:"unit"`

	// DebounceWindow paces suggestion fetches behind bursts of keystrokes.
	DebounceWindow time.Duration `mapstructure:"debounce_window"`

	// RequestTimeout bounds each upstream HTTP call.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	Telemetry struct {
		Enabled      bool   `mapstructure:"enabled"`
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"telemetry"`
}

// Load reads configuration from SKYCAST_* environment variables, applying
// defaults for everything except the API key.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SKYCAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("environment", "development")
	v.SetDefault("owm.api_key", "")
	v.SetDefault("owm.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("owm.geo_url", "https://api.openweathermap.org/geo/1.0")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("language", "ko")
	v.SetDefault("unit", "metric")
	v.SetDefault("debounce_window", 300*time.Millisecond)
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", "localhost:4317")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.OWM.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &cfg, nil
}

// DefaultLanguage maps the configured language code to a display language,
// falling back to Korean for unknown codes.
func (c *Config) DefaultLanguage() i18n.Language {
	if c.Language == "en" {
		return i18n.English
	}
	return i18n.Korean
}

// DefaultUnit maps the configured unit name to a unit system, falling back
// to metric for unknown names.
func (c *Config) DefaultUnit() units.System {
	if c.Unit == "imperial" {
		return units.Imperial
	}
	return units.Metric
}
