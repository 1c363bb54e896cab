package config

// Config holds namamala configuration.
// Stored at: {home}/config.yaml
type Config struct {
	LLMProviders map[string]LLMProviderCfg `mapstructure:"llm_providers" yaml:"llm_providers"`
	Corpus       CorpusCfg                 `mapstructure:"corpus" yaml:"corpus"`
	Pipeline     PipelineCfg               `mapstructure:"pipeline" yaml:"pipeline"`
	Defaults     DefaultsCfg               `mapstructure:"defaults" yaml:"defaults"`
}

// LLMProviderCfg configures an LLM provider.
type LLMProviderCfg struct {
	Type       string  `mapstructure:"type" yaml:"type"`               // "openrouter", "openai"
	Model      string  `mapstructure:"model" yaml:"model"`             // Model name
	APIKey     string  `mapstructure:"api_key" yaml:"api_key"`         // API key (supports ${ENV_VAR} syntax)
	MaxRetries int     `mapstructure:"max_retries" yaml:"max_retries"` // Transport retry attempts
	TimeoutSec int     `mapstructure:"timeout_sec" yaml:"timeout_sec"` // Per-call HTTP timeout
	RateLimit  float64 `mapstructure:"rate_limit" yaml:"rate_limit"`   // Requests per second
	Enabled    bool    `mapstructure:"enabled" yaml:"enabled"`
}

// CorpusCfg locates the vedabase corpus.
type CorpusCfg struct {
	// DatabasePath is the sqlite vedabase file. Empty means {home}/vedabase.db.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`
	// MaxCantos is the number of cantos in the corpus.
	MaxCantos int `mapstructure:"max_cantos" yaml:"max_cantos"`
}

// PipelineCfg tunes extraction batching.
type PipelineCfg struct {
	// BatchSize is the number of verse units per extraction batch.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
	// Temperature for generation. Kept at 0 so repeated runs are reproducible.
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	// MaxTokens caps completion length (0 = provider default).
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// DefaultsCfg specifies default provider selection.
type DefaultsCfg struct {
	LLMProvider string `mapstructure:"llm_provider" yaml:"llm_provider"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLMProviders: map[string]LLMProviderCfg{
			"openrouter": {
				Type:       "openrouter",
				Model:      "google/gemini-2.5-pro",
				APIKey:     "${OPENROUTER_API_KEY}",
				MaxRetries: 3,
				TimeoutSec: 300,
				Enabled:    true,
			},
			"openai": {
				Type:       "openai",
				Model:      "gpt-4.1",
				APIKey:     "${OPENAI_API_KEY}",
				MaxRetries: 3,
				TimeoutSec: 300,
				Enabled:    false,
			},
		},
		Corpus: CorpusCfg{
			MaxCantos: 12,
		},
		Pipeline: PipelineCfg{
			BatchSize:   20,
			Temperature: 0,
		},
		Defaults: DefaultsCfg{
			LLMProvider: "openrouter",
		},
	}
}

// GetLLMProvider returns an LLM provider config by name.
func (c *Config) GetLLMProvider(name string) (LLMProviderCfg, bool) {
	cfg, ok := c.LLMProviders[name]
	return cfg, ok
}
