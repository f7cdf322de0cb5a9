// Package config holds process configuration for taskdeck.
// Everything comes from environment variables; the CLI flags in cmd/taskdeck
// override individual values after loading.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config controls seeding and session startup.
type Config struct {
	// Seed loads the built-in demo dataset at startup. Without it the
	// application starts completely empty (no account can log in).
	Seed bool `env:"TASKDECK_SEED" env-default:"true"`

	// Login is the email to log in automatically at startup. Empty starts
	// at the login screen instead.
	Login string `env:"TASKDECK_LOGIN" env-default:"alice@company.com"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}
