package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/i474232898/weather-widget/internal/log"
)

// ErrMissingAPIKey is returned when OPENWEATHER_API_KEY is not set.
var ErrMissingAPIKey = errors.New("OPENWEATHER_API_KEY is required")

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// HTTPTimeout bounds each outbound provider call (0 = transport default).
	HTTPTimeout time.Duration

	// RefreshInterval re-runs the last search periodically (0 = disabled).
	RefreshInterval time.Duration

	LogLevel string
	Port     string
}

// Load reads configuration from the environment (and an optional .env file) with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugw("no .env file loaded", "error", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("HTTP_TIMEOUT", "0")
	v.SetDefault("REFRESH_INTERVAL", "0")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8080")

	cfg := &AppConfig{
		OpenWeatherAPIKey:  strings.TrimSpace(v.GetString("OPENWEATHER_API_KEY")),
		OpenWeatherBaseURL: strings.TrimRight(v.GetString("OPENWEATHER_BASE_URL"), "/"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		Port:               v.GetString("PORT"),
	}

	if cfg.OpenWeatherAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	timeout, err := parseDuration(v.GetString("HTTP_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	refresh, err := parseDuration(v.GetString("REFRESH_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	return cfg, nil
}

// parseDuration accepts Go duration strings and treats a bare "0" as disabled.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative: %s", s)
	}
	return d, nil
}
