package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	DefaultCheckInterval = 5
	DefaultMaxAttempts   = 6
)

// Settings bounds the polling loops: how long to wait between attempts
// (seconds) and how many attempts to make before giving up.
type Settings struct {
	CheckInterval int `json:"check_interval"`
	MaxAttempts   int `json:"max_attempts"`
}

func (s Settings) Interval() time.Duration {
	return time.Duration(s.CheckInterval) * time.Second
}

type Config struct {
	StripeAPIKey string   `json:"stripe_api_key"`
	Payment      Settings `json:"payment_settings"`
}

// Load reads a JSON config file. A missing payment_settings object, or a
// partial one, is filled with defaults before the settings are used anywhere.
// The STRIPE_API_KEY environment variable overrides the file value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Config{
		Payment: Settings{
			CheckInterval: DefaultCheckInterval,
			MaxAttempts:   DefaultMaxAttempts,
		},
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if cfg.Payment.CheckInterval <= 0 {
		cfg.Payment.CheckInterval = DefaultCheckInterval
	}
	if cfg.Payment.MaxAttempts <= 0 {
		cfg.Payment.MaxAttempts = DefaultMaxAttempts
	}

	if key := os.Getenv("STRIPE_API_KEY"); key != "" {
		cfg.StripeAPIKey = key
	}
	if cfg.StripeAPIKey == "" {
		return nil, errors.New("no stripe api key found in configuration")
	}
	return &cfg, nil
}
