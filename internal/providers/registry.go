package providers

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// LLMProviderConfig is the provider configuration passed from the config layer.
type LLMProviderConfig struct {
	Type       string
	Model      string
	APIKey     string
	MaxRetries int
	Timeout    time.Duration
	RateLimit  float64 // requests per second, 0 = unlimited
	Enabled    bool
}

// Registry holds named LLM clients and supports config-driven instantiation.
type Registry struct {
	mu         sync.RWMutex
	llmClients map[string]LLMClient
	logger     *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		llmClients: make(map[string]LLMClient),
		logger:     slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// RegisterLLM registers an LLM client by name.
func (r *Registry) RegisterLLM(name string, client LLMClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.llmClients[name] = client
	if r.logger != nil {
		r.logger.Info("registered LLM client", "name", name)
	}
}

// GetLLM returns an LLM client by name.
func (r *Registry) GetLLM(name string) (LLMClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.llmClients[name]
	if !ok {
		return nil, fmt.Errorf("LLM client not found: %s", name)
	}
	return client, nil
}

// LoadFromConfig instantiates and registers clients for every enabled
// provider config.
func (r *Registry) LoadFromConfig(configs map[string]LLMProviderConfig) error {
	for name, cfg := range configs {
		if !cfg.Enabled {
			continue
		}

		client, err := buildClient(cfg)
		if err != nil {
			return fmt.Errorf("provider %s: %w", name, err)
		}
		r.RegisterLLM(name, client)
	}
	return nil
}

func buildClient(cfg LLMProviderConfig) (LLMClient, error) {
	switch cfg.Type {
	case OpenRouterName:
		return NewOpenRouterClient(OpenRouterConfig{
			APIKey:       cfg.APIKey,
			DefaultModel: cfg.Model,
			MaxRetries:   cfg.MaxRetries,
			Timeout:      cfg.Timeout,
			RateLimit:    cfg.RateLimit,
		}), nil
	case OpenAIName:
		return NewOpenAIClient(OpenAIConfig{
			APIKey:       cfg.APIKey,
			DefaultModel: cfg.Model,
			MaxRetries:   cfg.MaxRetries,
			Timeout:      cfg.Timeout,
			RateLimit:    cfg.RateLimit,
		}), nil
	case MockClientName:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}
