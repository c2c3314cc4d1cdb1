// Package config holds the stock manager configuration.
package config

import (
	"strings"

	"github.com/abgdnv/stockmanager/pkg/config"
	"github.com/abgdnv/stockmanager/pkg/config/configloader"
)

// ServiceName prefixes environment overrides, e.g. STOCK_LOG_LEVEL.
const ServiceName = "stock"

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	Log         config.LogConfig         `koanf:"log"`
	Console     config.ConsoleConfig     `koanf:"console"`
	Diagnostics config.DiagnosticsConfig `koanf:"diagnostics"`
	Shutdown    config.ShutdownConfig    `koanf:"shutdown"`
}

// Defaults returns the values used when neither a file nor the environment sets a key.
func Defaults() map[string]any {
	return map[string]any{
		"log.level":           "warn",
		"console.variant":     config.ConsoleVariantFull,
		"diagnostics.enabled": false,
		"diagnostics.addr":    "localhost:6060",
		"diagnostics.timeout": "5s",
		"shutdown.timeout":    "5s",
	}
}

// Load reads the configuration from defaults, config.yaml, .env and the environment.
func Load() (*Config, error) {
	return configloader.Load[*Config](ServiceName, Defaults())
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.Log.String())
	b.WriteString(c.Console.String())
	b.WriteString(c.Diagnostics.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Console.Validate(); err != nil {
		return err
	}
	if err := c.Diagnostics.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	return nil
}
