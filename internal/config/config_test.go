package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxStorageBytes != DefaultMaxStorageBytes {
		t.Errorf("expected default budget %d, got %d", DefaultMaxStorageBytes, cfg.MaxStorageBytes)
	}
	if cfg.Generate.Provider != ProviderMock {
		t.Errorf("expected default provider %q, got %q", ProviderMock, cfg.Generate.Provider)
	}
	if cfg.DataDir == "" {
		t.Error("expected a default data directory")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	original := DefaultConfig()
	original.DataDir = dir
	original.MaxStorageBytes = 1 << 20
	original.Supabase.URL = "https://example.supabase.co"
	original.Supabase.AnonKey = "anon-key"
	original.Generate.Provider = ProviderOpenAI
	original.Generate.Model = "gpt-4o"
	original.Server.Port = 9000

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
	if loaded.MaxStorageBytes != original.MaxStorageBytes {
		t.Errorf("max_storage_bytes: got %d, want %d", loaded.MaxStorageBytes, original.MaxStorageBytes)
	}
	if loaded.Supabase.URL != original.Supabase.URL {
		t.Errorf("supabase.url: got %q, want %q", loaded.Supabase.URL, original.Supabase.URL)
	}
	if loaded.Generate.Provider != original.Generate.Provider {
		t.Errorf("generate.provider: got %q, want %q", loaded.Generate.Provider, original.Generate.Provider)
	}
	if loaded.Server.Port != original.Server.Port {
		t.Errorf("server.port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading a missing file should fall back to defaults: %v", err)
	}
	if cfg.MaxStorageBytes != DefaultMaxStorageBytes {
		t.Errorf("expected defaults, got budget %d", cfg.MaxStorageBytes)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MERMAIDKEEP_SUPABASE_URL", "https://env.supabase.co")
	t.Setenv("MERMAIDKEEP_SUPABASE_ANON_KEY", "env-key")
	t.Setenv("MERMAIDKEEP_DATA_DIR", "/tmp/env-vault")

	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Supabase.URL != "https://env.supabase.co" {
		t.Errorf("env override missed: %q", cfg.Supabase.URL)
	}
	if cfg.Supabase.AnonKey != "env-key" {
		t.Errorf("env override missed: %q", cfg.Supabase.AnonKey)
	}
	if cfg.DataDir != "/tmp/env-vault" {
		t.Errorf("env override missed: %q", cfg.DataDir)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"missing data dir", func(c *Config) { c.DataDir = "" }, false},
		{"zero budget", func(c *Config) { c.MaxStorageBytes = 0 }, false},
		{"unknown provider", func(c *Config) { c.Generate.Provider = "anthropic" }, false},
		{"openai without model", func(c *Config) {
			c.Generate.Provider = ProviderOpenAI
			c.Generate.Model = ""
		}, false},
		{"url without key", func(c *Config) { c.Supabase.URL = "https://x.supabase.co" }, false},
		{"key without url", func(c *Config) { c.Supabase.AnonKey = "k" }, false},
		{"url and key", func(c *Config) {
			c.Supabase.URL = "https://x.supabase.co"
			c.Supabase.AnonKey = "k"
		}, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
