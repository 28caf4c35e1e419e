package config

import (
	"os"
	"path/filepath"
)

// DefaultMaxStorageBytes mirrors the 5 MB browser storage budget the
// local vault was designed around.
const DefaultMaxStorageBytes = 5 << 20

// DefaultDataDir returns ~/.mermaidkeep, falling back to a relative
// directory when the home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mermaidkeep"
	}
	return filepath.Join(home, ".mermaidkeep")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:         DefaultDataDir(),
		MaxStorageBytes: DefaultMaxStorageBytes,
		Generate: GenerateConfig{
			Provider:  ProviderMock,
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Server: ServerConfig{
			Port: 8480,
		},
		Preview: PreviewConfig{
			Port: 8481,
		},
	}
}
