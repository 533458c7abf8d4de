// Package config loads schemasync settings.
//
// Precedence, highest first: explicitly set flags, SCHEMASYNC_* environment
// variables (a .env file in the working directory is loaded into the
// environment first), the YAML config file, defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// DefaultConfigFile is looked up in the working directory when no
	// config file is given.
	DefaultConfigFile = "schemasync.yaml"
	// DefaultModelsFile holds the model declarations.
	DefaultModelsFile = "models.yaml"

	envPrefix = "SCHEMASYNC_"
)

// Config holds the CLI settings
type Config struct {
	Database  string   `koanf:"database"`
	Models    string   `koanf:"models" validate:"required"`
	Tables    []string `koanf:"tables"`
	Schema    string   `koanf:"schema"`
	Format    string   `koanf:"format" validate:"oneof=text markdown md"`
	LogLevel  string   `koanf:"log_level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFormat string   `koanf:"log_format" validate:"oneof=text json"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// Load reads configuration from defaults, cfgFile, the environment and flags.
// A missing default config file is not an error; a missing explicit one is.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Load .env file if it exists (silently ignore if missing)
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"models":     DefaultModelsFile,
		"format":     "text",
		"log_level":  "info",
		"log_format": "text",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := cfgFile
	if used == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			used = DefaultConfigFile
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// SCHEMASYNC_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used
	cfg.Tables = splitList(cfg.Tables)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// splitList accepts both list values and comma-separated strings, as
// environment variables can only carry the latter
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
