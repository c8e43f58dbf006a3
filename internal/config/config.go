// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config loads studydeck settings from ~/.studydeck.yaml and the
// STUDYDECK_* environment, via viper. Flags on individual commands override
// both.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the resolved settings.
type Config struct {
	// User identifies whose session snapshot to load and save.
	User string `mapstructure:"user"`

	// Deck is the content source: a local .csv/.xlsx/.yaml path or a
	// published-sheet CSV URL.
	Deck string `mapstructure:"deck"`

	// DailyGoal is the cards-per-day target; zero falls back to the
	// engine default.
	DailyGoal int `mapstructure:"daily_goal"`

	// Storage selects the backend: "sqlite" (default) or "memory".
	Storage string `mapstructure:"storage"`

	// DBPath overrides the SQLite database location.
	DBPath string `mapstructure:"db_path"`

	// ServeAddr is the bind address for the web view.
	ServeAddr string `mapstructure:"serve_addr"`

	// LogMode selects zap config: "dev" (default) or "prod".
	LogMode string `mapstructure:"log_mode"`
}

// Load reads the config file (if any) and environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".studydeck")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STUDYDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("user", "default")
	v.SetDefault("storage", "sqlite")
	v.SetDefault("serve_addr", "127.0.0.1:8080")
	v.SetDefault("log_mode", "dev")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file is fine; env and defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
