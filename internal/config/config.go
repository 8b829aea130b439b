package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the cart binaries. Values come from an
// optional YAML file and are overridden by CART_* environment variables.
type Config struct {
	SeedPath      string `yaml:"seedPath"`
	SeedPatchPath string `yaml:"seedPatchPath"`
	LogLevel      string `yaml:"logLevel"`
	LogFormat     string `yaml:"logFormat"`
	HTTPAddr      string `yaml:"httpAddr"`
}

func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "console",
		HTTPAddr:  ":8080",
	}
}

// Load reads path (when non-empty) over the defaults, then applies the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.SeedPath = getenv("CART_SEED_PATH", cfg.SeedPath)
	cfg.SeedPatchPath = getenv("CART_SEED_PATCH_PATH", cfg.SeedPatchPath)
	cfg.LogLevel = getenv("CART_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("CART_LOG_FORMAT", cfg.LogFormat)
	cfg.HTTPAddr = getenv("CART_HTTP_ADDR", cfg.HTTPAddr)
	return cfg, nil
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
