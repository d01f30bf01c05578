// Package config loads process settings from the environment. Command-line
// flags override whatever the environment provides.
package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

// Config carries everything both modes need to start.
type Config struct {
	// Port the host's session hub listens on; peers connect to it.
	Port int `env:"SLIDECASTER_PORT" envDefault:"8807"`
	// Session names the broadcast channel. Host and peers must agree.
	Session string `env:"SLIDECASTER_SESSION" envDefault:"table"`
	// Folders the GM may browse for media, colon separated.
	Folders []string `env:"SLIDECASTER_FOLDERS" envSeparator:":"`
	// HostAddr pins a peer to a specific host ("192.168.1.4:8807") instead of
	// discovering one.
	HostAddr string `env:"SLIDECASTER_HOST"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
