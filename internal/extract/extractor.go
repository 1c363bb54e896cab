// Package extract drives the two-round name extraction protocol for one
// batch of verse text.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vedabase-tools/namamala/internal/namestore"
	"github.com/vedabase-tools/namamala/internal/prompts/names"
	"github.com/vedabase-tools/namamala/internal/providers"
	"github.com/vedabase-tools/namamala/internal/types"
)

// Config configures an Extractor.
type Config struct {
	// Client is the generative capability. Required.
	Client providers.LLMClient
	// Model overrides the client default when set.
	Model string
	// Temperature is kept at zero for reproducible runs.
	Temperature float64
	// MaxTokens caps completion length (0 = provider default).
	MaxTokens int
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Extractor runs the extraction protocol against an explicit LLM client.
// Round 1 submits the batch with the task prompt; round 2 replays the
// full exchange and asks for additional names. The result is the union
// of both rounds' validated records, deduplicated by normalized name.
type Extractor struct {
	client providers.LLMClient
	logger *slog.Logger

	mu          sync.RWMutex
	model       string
	temperature float64
	maxTokens   int
}

// New creates an Extractor.
func New(cfg Config) *Extractor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		client:      cfg.Client,
		logger:      logger,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// SetModel changes the model used for subsequent batches. Called from
// the config hot-reload path.
func (e *Extractor) SetModel(model string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.model = model
}

// SetTemperature changes the sampling temperature for subsequent batches.
func (e *Extractor) SetTemperature(temperature float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.temperature = temperature
}

// SetMaxTokens changes the completion cap for subsequent batches.
func (e *Extractor) SetMaxTokens(maxTokens int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.maxTokens = maxTokens
}

// Extract runs both rounds on one batch and returns the merged records.
func (e *Extractor) Extract(ctx context.Context, batchText, sourceRef string, exclusions []string) ([]types.NameRecord, error) {
	firstPrompt := names.BuildFirstPrompt(batchText, sourceRef, exclusions)

	e.logger.Info("extracting names", "source", sourceRef, "excluded", len(exclusions))

	firstResult, firstNames, err := e.round(ctx, []providers.Message{
		{Role: "user", Content: firstPrompt},
	})
	if err != nil {
		return nil, fmt.Errorf("extraction round 1: %w", err)
	}

	e.logger.Info("continuing to find more names", "source", sourceRef, "found", len(firstNames.Names))

	_, secondNames, err := e.round(ctx, []providers.Message{
		{Role: "user", Content: firstPrompt},
		{Role: "assistant", Content: firstResult.Content},
		{Role: "user", Content: names.BuildContinuationPrompt(sourceRef)},
	})
	if err != nil {
		return nil, fmt.Errorf("extraction round 2: %w", err)
	}

	merged := mergeRounds(firstNames.Names, secondNames.Names)
	e.logger.Info("batch extraction complete",
		"source", sourceRef,
		"round1", len(firstNames.Names),
		"round2", len(secondNames.Names),
		"merged", len(merged))
	return merged, nil
}

// round submits one schema-constrained request and parses the response.
func (e *Extractor) round(ctx context.Context, messages []providers.Message) (*providers.ChatResult, *names.Result, error) {
	e.mu.RLock()
	req := &providers.ChatRequest{
		Messages:       messages,
		Model:          e.model,
		Temperature:    e.temperature,
		MaxTokens:      e.maxTokens,
		ResponseFormat: names.BuildResponseFormat(),
	}
	e.mu.RUnlock()

	result, err := e.client.Chat(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	parsed, err := names.ParseResult(result.ParsedJSON)
	if err != nil {
		return nil, nil, fmt.Errorf("parse extraction result: %w", err)
	}
	return result, parsed, nil
}

// mergeRounds unions both rounds' records, deduplicating by normalized
// name and keeping round-1 order first. The model is asked not to repeat
// round-1 names in round 2, but that is a soft guarantee.
func mergeRounds(first, second []types.NameRecord) []types.NameRecord {
	merged := make([]types.NameRecord, 0, len(first)+len(second))
	seen := make(map[string]struct{}, len(first)+len(second))

	for _, r := range append(append([]types.NameRecord{}, first...), second...) {
		key := namestore.Normalize(r.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, r)
	}
	return merged
}
