// Package config loads and persists the mermaidkeep configuration:
// defaults, then the YAML file, then MERMAIDKEEP_* environment
// overrides, each layer overriding the one before.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// FileName is the configuration file inside the data directory.
const FileName = "config.yml"

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), FileName)
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (MERMAIDKEEP_*). A missing file is
// not an error; defaults apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// MERMAIDKEEP_SUPABASE_URL -> supabase.url, etc. A single
	// underscore separates path segments; field names here have none.
	if err := k.Load(env.Provider("MERMAIDKEEP_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "MERMAIDKEEP_"))
		for _, prefix := range []string{"supabase_", "generate_", "server_", "preview_"} {
			if strings.HasPrefix(key, prefix) {
				return strings.TrimSuffix(prefix, "_") + "." + strings.TrimPrefix(key, prefix)
			}
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path, creating
// the parent directory if needed.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized generation provider values.
var validProviders = map[ProviderType]bool{
	ProviderOpenAI: true,
	ProviderMock:   true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.MaxStorageBytes <= 0 {
		return fmt.Errorf("max_storage_bytes must be positive")
	}

	if c.Generate.Provider != "" && !validProviders[c.Generate.Provider] {
		return fmt.Errorf("invalid generate.provider %q: must be one of openai, mock", c.Generate.Provider)
	}
	if c.Generate.Provider == ProviderOpenAI && c.Generate.Model == "" {
		return fmt.Errorf("generate.model is required for the openai provider")
	}

	// Both or neither: a URL without a key cannot authenticate, and a
	// key without a URL has nowhere to go.
	if (c.Supabase.URL == "") != (c.Supabase.AnonKey == "") {
		return fmt.Errorf("supabase.url and supabase.anon_key must be set together")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return fmt.Errorf("invalid preview.port %d", c.Preview.Port)
	}

	return nil
}

// CloudConfigured reports whether a Supabase backend is set up.
func (c *Config) CloudConfigured() bool {
	return c.Supabase.URL != "" && c.Supabase.AnonKey != ""
}

// APIKey resolves the generation API key from the configured
// environment variable. Empty when unset.
func (c *Config) APIKey() string {
	if c.Generate.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Generate.APIKeyEnv)
}
