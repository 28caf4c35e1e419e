package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the data directory.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to mermaidkeep! Let's configure your diagram vault.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Data directory.
	dirPrompt := promptui.Prompt{
		Label:   "Data directory",
		Default: cfg.DataDir,
	}
	dataDir, err := dirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}
	cfg.DataDir = dataDir

	// 2. Cloud backend.
	cloudPrompt := promptui.Select{
		Label: "Cloud sync backend",
		Items: []string{"none (local only)", "supabase"},
	}
	cloudIdx, _, err := cloudPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cloud selection: %w", err)
	}
	if cloudIdx == 1 {
		urlPrompt := promptui.Prompt{Label: "Supabase project URL"}
		url, err := urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("supabase url: %w", err)
		}
		keyPrompt := promptui.Prompt{Label: "Supabase anon key"}
		key, err := keyPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("supabase anon key: %w", err)
		}
		cfg.Supabase.URL = strings.TrimSpace(url)
		cfg.Supabase.AnonKey = strings.TrimSpace(key)
	}

	// 3. AI generation provider.
	providerPrompt := promptui.Select{
		Label: "AI generation provider",
		Items: []string{
			"mock   - built-in templates, no API key",
			"openai - gpt-4o-mini via OPENAI_API_KEY",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	if providerIdx == 1 {
		cfg.Generate.Provider = ProviderOpenAI
		if os.Getenv(cfg.Generate.APIKeyEnv) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running mermaidkeep generate.\n", cfg.Generate.APIKeyEnv)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configPath := filepath.Join(cfg.DataDir, FileName)
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
