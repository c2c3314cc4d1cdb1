package config

import (
	"fmt"
	"slices"
	"time"
)

// LogLevels are the accepted values of log.level, from most to least verbose.
var LogLevels = []string{"debug", "info", "warn", "error"}

// LogConfig selects the minimum level written to the log output.
type LogConfig struct {
	Level string `koanf:"level"`
}

func (c *LogConfig) String() string {
	return fmt.Sprintf("\n--- Log ---\n  level: %s\n", c.Level)
}

func (c *LogConfig) Validate() error {
	if slices.Contains(LogLevels, c.Level) {
		return nil
	}
	return fmt.Errorf("invalid log level %q, expected one of %v", c.Level, LogLevels)
}

// ShutdownConfig bounds how long background listeners get to stop once the console exits.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) String() string {
	return fmt.Sprintf("\n--- Shutdown ---\n  timeout: %s\n", c.Timeout)
}

func (c *ShutdownConfig) Validate() error {
	if c.Timeout > 0 {
		return nil
	}
	return fmt.Errorf("shutdown timeout is not configured")
}
