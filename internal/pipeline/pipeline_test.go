package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vedabase-tools/namamala/internal/types"
	"github.com/vedabase-tools/namamala/internal/vedabase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubCorpus serves a fixed set of chapters, each with a fixed verse count.
type stubCorpus struct {
	chapters map[[2]int]int // (canto,chapter) -> verse count
}

func (c *stubCorpus) Locate(ctx context.Context, canto, chapter int) (*vedabase.ChapterSpan, error) {
	if _, ok := c.chapters[[2]int{canto, chapter}]; !ok {
		return nil, fmt.Errorf("SB %d.%d: %w", canto, chapter, vedabase.ErrChapterNotFound)
	}
	return &vedabase.ChapterSpan{Canto: canto, Chapter: chapter, FirstRecord: 1, LastRecord: 2}, nil
}

func (c *stubCorpus) Verses(ctx context.Context, span *vedabase.ChapterSpan) ([]string, error) {
	n := c.chapters[[2]int{span.Canto, span.Chapter}]
	verses := make([]string, n)
	for i := range verses {
		verses[i] = fmt.Sprintf("TEXT %d verse body", i+1)
	}
	return verses, nil
}

// stubExtractor records every batch it receives.
type stubExtractor struct {
	batches    []string
	exclusions [][]string
	err        error
}

func (e *stubExtractor) Extract(ctx context.Context, batchText, sourceRef string, exclusions []string) ([]types.NameRecord, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.batches = append(e.batches, batchText)
	e.exclusions = append(e.exclusions, exclusions)
	return []types.NameRecord{{Name: fmt.Sprintf("name-%d", len(e.batches))}}, nil
}

// stubStore records appends and serves a fixed exclusion set.
type stubStore struct {
	exclusions    []string
	loadCalls     int
	appendedCount int
	appendErr     error
}

func (s *stubStore) LoadExclusions(canto, chapter int) []string {
	s.loadCalls++
	return s.exclusions
}

func (s *stubStore) Append(canto, chapter int, records []types.NameRecord) (int, error) {
	if s.appendErr != nil {
		return 0, s.appendErr
	}
	s.appendedCount += len(records)
	return len(records), nil
}

func newTestPipeline(verseCount int, store *stubStore, ex *stubExtractor) *Pipeline {
	return New(Config{
		Corpus:    &stubCorpus{chapters: map[[2]int]int{{1, 1}: verseCount}},
		Extractor: ex,
		Store:     store,
		Logger:    discardLogger(),
	})
}

func TestChapter_BatchCoverage(t *testing.T) {
	tests := []struct {
		verses      int
		wantBatches int
		wantLast    int // verse units in the final batch
	}{
		{verses: 45, wantBatches: 3, wantLast: 5},
		{verses: 40, wantBatches: 2, wantLast: 20},
		{verses: 20, wantBatches: 1, wantLast: 20},
		{verses: 7, wantBatches: 1, wantLast: 7},
		{verses: 21, wantBatches: 2, wantLast: 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d verses", tt.verses), func(t *testing.T) {
			ex := &stubExtractor{}
			p := newTestPipeline(tt.verses, &stubStore{}, ex)

			if err := p.Chapter(context.Background(), 1, 1); err != nil {
				t.Fatalf("Chapter() error = %v", err)
			}
			if len(ex.batches) != tt.wantBatches {
				t.Fatalf("got %d batches, want %d", len(ex.batches), tt.wantBatches)
			}

			// No verse omitted or duplicated across batches: the batch
			// texts joined together must contain each marker exactly once.
			all := " " + strings.Join(ex.batches, " ") + " "
			for i := 1; i <= tt.verses; i++ {
				marker := fmt.Sprintf(" TEXT %d verse", i)
				if got := strings.Count(all, marker); got != 1 {
					t.Errorf("verse %d appears %d times across batches", i, got)
				}
			}

			last := ex.batches[len(ex.batches)-1]
			if got := strings.Count(last, "TEXT "); got != tt.wantLast {
				t.Errorf("last batch has %d verses, want %d", got, tt.wantLast)
			}
		})
	}
}

func TestChapter_ExclusionsLoadedOnce(t *testing.T) {
	store := &stubStore{exclusions: []string{"Vāsudeva"}}
	ex := &stubExtractor{}
	p := newTestPipeline(45, store, ex)

	if err := p.Chapter(context.Background(), 1, 1); err != nil {
		t.Fatalf("Chapter() error = %v", err)
	}

	if store.loadCalls != 1 {
		t.Errorf("LoadExclusions called %d times, want 1", store.loadCalls)
	}
	for i, excl := range ex.exclusions {
		if len(excl) != 1 || excl[0] != "Vāsudeva" {
			t.Errorf("batch %d exclusions = %v", i, excl)
		}
	}
}

func TestChapter_AppendsEveryBatch(t *testing.T) {
	store := &stubStore{}
	p := newTestPipeline(45, store, &stubExtractor{})

	if err := p.Chapter(context.Background(), 1, 1); err != nil {
		t.Fatalf("Chapter() error = %v", err)
	}
	if store.appendedCount != 3 {
		t.Errorf("appended %d records, want 3 (one per batch)", store.appendedCount)
	}
}

func TestChapter_NotFoundPropagates(t *testing.T) {
	p := newTestPipeline(10, &stubStore{}, &stubExtractor{})

	err := p.Chapter(context.Background(), 13, 1)
	if err == nil {
		t.Fatal("Chapter(13,1) error = nil, want ErrChapterNotFound")
	}
	if !errors.Is(err, vedabase.ErrChapterNotFound) {
		t.Errorf("Chapter(13,1) error = %v, want ErrChapterNotFound", err)
	}
}

func TestChapter_ExtractionFailureAborts(t *testing.T) {
	ex := &stubExtractor{err: fmt.Errorf("malformed extraction response")}
	store := &stubStore{}
	p := newTestPipeline(45, store, ex)

	if err := p.Chapter(context.Background(), 1, 1); err == nil {
		t.Fatal("Chapter() error = nil, want extraction failure")
	}
	if store.appendedCount != 0 {
		t.Errorf("appended %d records after failed first batch", store.appendedCount)
	}
}
