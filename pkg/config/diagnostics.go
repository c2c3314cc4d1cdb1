package config

import (
	"fmt"
	"strings"
	"time"
)

// DiagnosticsConfig controls the optional health and profiling listener.
type DiagnosticsConfig struct {
	Enabled           bool          `koanf:"enabled"`
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the diagnostics configuration.
func (c *DiagnosticsConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Diagnostics ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  address: %s\n", c.Addr))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.ReadHeaderTimeout))
	return b.String()
}

func (c *DiagnosticsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" {
		return fmt.Errorf("diagnostics server is enabled but address is not configured")
	}
	if c.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("invalid diagnostics read header timeout: %v", c.ReadHeaderTimeout)
	}
	return nil
}
