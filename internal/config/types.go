package config

// ProviderType identifies an AI generation provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderMock   ProviderType = "mock"
)

// Config is the top-level mermaidkeep configuration, corresponding to
// config.yml in the data directory.
type Config struct {
	DataDir         string         `yaml:"data_dir" koanf:"data_dir"`
	MaxStorageBytes int64          `yaml:"max_storage_bytes" koanf:"max_storage_bytes"`
	Supabase        SupabaseConfig `yaml:"supabase" koanf:"supabase"`
	Generate        GenerateConfig `yaml:"generate" koanf:"generate"`
	Server          ServerConfig   `yaml:"server" koanf:"server"`
	Preview         PreviewConfig  `yaml:"preview" koanf:"preview"`
}

// SupabaseConfig holds the cloud backend settings. Both fields empty
// means local-only operation.
type SupabaseConfig struct {
	URL     string `yaml:"url" koanf:"url"`
	AnonKey string `yaml:"anon_key" koanf:"anon_key"`
}

// GenerateConfig holds AI generation settings. The API key itself is
// never stored in the file, only the name of the environment variable
// holding it.
type GenerateConfig struct {
	Provider  ProviderType `yaml:"provider" koanf:"provider"`
	Model     string       `yaml:"model" koanf:"model"`
	APIKeyEnv string       `yaml:"api_key_env" koanf:"api_key_env"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port int `yaml:"port" koanf:"port"`
}

// PreviewConfig holds live preview settings.
type PreviewConfig struct {
	Port int `yaml:"port" koanf:"port"`
}
