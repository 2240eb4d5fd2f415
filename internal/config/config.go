// Package config loads application configuration via Viper from env vars
// and an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application configuration.
type Config struct {
	App     AppConfig
	Log     LogConfig
	History HistoryConfig
}

// AppConfig is general application configuration.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string // debug, info, warn, error
}

// HistoryConfig bounds historical analytics.
type HistoryConfig struct {
	// Floor is the first date for which stock history is considered
	// available. Requested windows starting earlier are truncated to it.
	Floor string // YYYY-MM-DD

	// Timezone resolves calendar day boundaries ("Local", "UTC", or an
	// IANA zone name).
	Timezone string
}

// Location resolves the configured timezone.
func (c HistoryConfig) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	default:
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
		}
		return loc, nil
	}
}

// FloorDate parses the history floor as midnight in the given location.
func (c HistoryConfig) FloorDate(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", c.Floor, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse history floor %q: %w", c.Floor, err)
	}
	return t, nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables (and optionally a
// .env file in the working directory). Env vars take priority.
// Expected names: APP_ENV, LOG_LEVEL, HISTORY_FLOOR, HISTORY_TIMEZONE.
func Load() (*Config, error) {
	v := viper.New()

	// Optional .env file; missing file is not an error.
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "nexus-wms"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		History: HistoryConfig{
			// Stock history predating the floor is not recorded in the
			// source datasets, so reconstruction stops there.
			Floor:    getString(v, "HISTORY_FLOOR", "2018-01-01"),
			Timezone: getString(v, "HISTORY_TIMEZONE", "Local"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}
