package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vedabase-tools/namamala/internal/vedabase"
)

// DefaultMaxCantos is the number of cantos in the corpus.
const DefaultMaxCantos = 12

// ChapterRunner processes a single chapter.
type ChapterRunner interface {
	Chapter(ctx context.Context, canto, chapter int) error
}

// DriverConfig configures a Driver.
type DriverConfig struct {
	Runner ChapterRunner
	// MaxCantos defaults to DefaultMaxCantos.
	MaxCantos int
	// StartCanto/StartChapter default to 1.
	StartCanto   int
	StartChapter int
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Driver sweeps the corpus: chapters ascend within a canto until the
// runner reports vedabase.ErrChapterNotFound, which advances to the next
// canto; the sweep ends once the canto count is exhausted. Any other
// error aborts the run.
type Driver struct {
	runner       ChapterRunner
	maxCantos    int
	startCanto   int
	startChapter int
	logger       *slog.Logger
}

// NewDriver creates a Driver.
func NewDriver(cfg DriverConfig) *Driver {
	maxCantos := cfg.MaxCantos
	if maxCantos <= 0 {
		maxCantos = DefaultMaxCantos
	}
	startCanto := cfg.StartCanto
	if startCanto <= 0 {
		startCanto = 1
	}
	startChapter := cfg.StartChapter
	if startChapter <= 0 {
		startChapter = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		runner:       cfg.Runner,
		maxCantos:    maxCantos,
		startCanto:   startCanto,
		startChapter: startChapter,
		logger:       logger,
	}
}

// Run executes the sweep.
func (d *Driver) Run(ctx context.Context) error {
	canto, chapter := d.startCanto, d.startChapter

	for canto <= d.maxCantos {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := d.runner.Chapter(ctx, canto, chapter)
		switch {
		case err == nil:
			chapter++
		case errors.Is(err, vedabase.ErrChapterNotFound):
			d.logger.Info("canto complete", "canto", canto, "chapters", chapter-1)
			canto++
			chapter = 1
		default:
			return fmt.Errorf("canto %d chapter %d: %w", canto, chapter, err)
		}
	}

	d.logger.Info("corpus sweep complete", "cantos", d.maxCantos)
	return nil
}
