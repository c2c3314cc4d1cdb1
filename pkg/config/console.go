package config

import (
	"fmt"
	"strings"
)

// Console variants. Basic offers add and view only; full adds update, delete and unique-id prompting.
const (
	ConsoleVariantFull  = "full"
	ConsoleVariantBasic = "basic"
)

type ConsoleConfig struct {
	Variant string `koanf:"variant"`
}

// String returns a string representation of the console configuration.
func (c *ConsoleConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Console ---\n")
	b.WriteString(fmt.Sprintf("  variant: %s\n", c.Variant))
	return b.String()
}

func (c *ConsoleConfig) Validate() error {
	switch c.Variant {
	case ConsoleVariantFull, ConsoleVariantBasic:
		return nil
	default:
		return fmt.Errorf("invalid console variant %q, expected %q or %q", c.Variant, ConsoleVariantFull, ConsoleVariantBasic)
	}
}
