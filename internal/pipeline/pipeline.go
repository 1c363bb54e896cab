// Package pipeline chunks a chapter's verse units into batches, drives
// the extraction protocol over them, and sweeps the whole corpus canto
// by canto.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vedabase-tools/namamala/internal/prompts/names"
	"github.com/vedabase-tools/namamala/internal/types"
	"github.com/vedabase-tools/namamala/internal/vedabase"
)

// DefaultBatchSize is the number of verse units per extraction batch.
const DefaultBatchSize = 20

// Corpus resolves chapter spans and segments verse units.
type Corpus interface {
	Locate(ctx context.Context, canto, chapter int) (*vedabase.ChapterSpan, error)
	Verses(ctx context.Context, span *vedabase.ChapterSpan) ([]string, error)
}

// Extractor runs the extraction protocol on one batch of verse text.
type Extractor interface {
	Extract(ctx context.Context, batchText, sourceRef string, exclusions []string) ([]types.NameRecord, error)
}

// Store persists extracted records and serves per-chapter exclusion sets.
type Store interface {
	LoadExclusions(canto, chapter int) []string
	Append(canto, chapter int, records []types.NameRecord) (int, error)
}

// Config configures a Pipeline.
type Config struct {
	Corpus    Corpus
	Extractor Extractor
	Store     Store
	// BatchSize defaults to DefaultBatchSize.
	BatchSize int
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Pipeline processes one chapter at a time, strictly sequentially.
type Pipeline struct {
	corpus    Corpus
	extractor Extractor
	store     Store
	batchSize int
	logger    *slog.Logger
}

// New creates a Pipeline.
func New(cfg Config) *Pipeline {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		corpus:    cfg.Corpus,
		extractor: cfg.Extractor,
		store:     cfg.Store,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Chapter extracts and persists all names from one chapter. The
// exclusion set is loaded once up front, so names found by earlier
// batches of the same run are filtered only at store-write time.
// Returns vedabase.ErrChapterNotFound (wrapped) when the chapter does
// not exist.
func (p *Pipeline) Chapter(ctx context.Context, canto, chapter int) error {
	span, err := p.corpus.Locate(ctx, canto, chapter)
	if err != nil {
		return err
	}

	verses, err := p.corpus.Verses(ctx, span)
	if err != nil {
		return fmt.Errorf("segment canto %d chapter %d: %w", canto, chapter, err)
	}

	sourceRef := names.SourceRef(canto, chapter)
	exclusions := p.store.LoadExclusions(canto, chapter)
	numBatches := (len(verses) + p.batchSize - 1) / p.batchSize

	p.logger.Info("processing chapter",
		"canto", canto, "chapter", chapter,
		"verses", len(verses), "batches", numBatches)

	for i := 0; i < numBatches; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := i * p.batchSize
		end := start + p.batchSize
		if end > len(verses) {
			end = len(verses)
		}
		batchText := strings.Join(verses[start:end], " ")

		records, err := p.extractor.Extract(ctx, batchText, sourceRef, exclusions)
		if err != nil {
			return fmt.Errorf("batch %d/%d of canto %d chapter %d: %w",
				i+1, numBatches, canto, chapter, err)
		}

		added, err := p.store.Append(canto, chapter, records)
		if err != nil {
			return fmt.Errorf("persist batch %d/%d of canto %d chapter %d: %w",
				i+1, numBatches, canto, chapter, err)
		}

		p.logger.Info("batch complete",
			"canto", canto, "chapter", chapter,
			"batch", i+1, "batches", numBatches,
			"found", len(records), "added", added)
	}

	return nil
}
