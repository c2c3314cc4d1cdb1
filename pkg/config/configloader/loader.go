package configloader

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	configFile = "config.yaml"
	envFile    = ".env"
)

type Validator interface {
	Validate() error
}

// Load builds a configuration of type T from, in increasing priority:
// defaults, config.yaml, the .env file and the process environment.
// Environment keys are <SERVICENAME>_SECTION_KEY, e.g. STOCK_LOG_LEVEL for log.level.
func Load[T Validator](serviceName string, defaults map[string]any) (T, error) {
	var cfg T
	k := koanf.New(".")

	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(serviceName))
	envTransformer := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}

	// 0. Built-in defaults, the lowest priority
	if len(defaults) > 0 {
		if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
			return cfg, fmt.Errorf("error loading defaults: %w", err)
		}
	}

	// 1. Load configuration from yaml file
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("error loading YAML config file", "file", configFile, "error", err)
		}
	}

	// 2. Load environment variables from .env file
	if envFileMap, err := godotenv.Read(envFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			envMap[envTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			slog.Warn("error loading .env config", "error", err)
		}
	} else if !os.IsNotExist(err) {
		slog.Warn("error reading .env file", "error", err)
	}

	// 3. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
		slog.Warn("error loading system env vars", "error", err)
	}

	// 4. Unmarshal the configuration into the Config struct
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// 5. Validate the configuration
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
