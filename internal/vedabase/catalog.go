package vedabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrChapterNotFound signals that no chapter node matches a (canto, chapter)
// pair. The driver uses it to roll over to the next canto.
var ErrChapterNotFound = errors.New("chapter not found")

// chapterLevel is the contents-tree depth at which chapter nodes live.
const chapterLevel = 6

// Chapter titles carry a canonical verse-range label like "SB 1.2: ..." with
// one- or two-digit canto and chapter components.
const catalogQuery = `
	SELECT parent.title, child.title, child.record AS first_text, child.next_sibling AS last_text
	FROM contents AS child
	JOIN contents AS parent ON child.parent = parent.record
	WHERE child.level = ?
	  AND ( child.title LIKE 'SB _._:%' OR child.title LIKE 'SB _.__:%'
	     OR child.title LIKE 'SB __._:%' OR child.title LIKE 'SB __.__:%' )`

// ChapterInfo is one row of the located chapter catalog.
type ChapterInfo struct {
	CantoTitle  string `json:"canto_title" yaml:"canto_title"`
	Title       string `json:"title" yaml:"title"`
	FirstRecord int    `json:"first_record" yaml:"first_record"`
	LastRecord  int    `json:"last_record" yaml:"last_record"`
}

// ChapterSpan is the record-id span of a located chapter.
type ChapterSpan struct {
	Canto       int
	Chapter     int
	FirstRecord int
	LastRecord  int
}

// Catalog lists every chapter in the corpus by matching the verse-range
// label pattern against level-6 contents nodes joined with their parents.
// The catalog is also persisted as a JSON side artifact when configured;
// that write is best-effort and never fails the caller.
func (d *DB) Catalog(ctx context.Context) ([]ChapterInfo, error) {
	rows, err := d.db.QueryContext(ctx, catalogQuery, chapterLevel)
	if err != nil {
		return nil, fmt.Errorf("query chapter catalog: %w", err)
	}
	defer rows.Close()

	var chapters []ChapterInfo
	for rows.Next() {
		var ch ChapterInfo
		if err := rows.Scan(&ch.CantoTitle, &ch.Title, &ch.FirstRecord, &ch.LastRecord); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		chapters = append(chapters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}

	d.logger.Info("located chapters", "count", len(chapters))
	d.writeCatalog(chapters)

	return chapters, nil
}

// Locate resolves a (canto, chapter) pair to its record-id span.
// Returns ErrChapterNotFound when no catalog entry matches.
func (d *DB) Locate(ctx context.Context, canto, chapter int) (*ChapterSpan, error) {
	chapters, err := d.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	needle := fmt.Sprintf("SB %d.%d:", canto, chapter)
	for _, ch := range chapters {
		if !strings.Contains(ch.Title, needle) {
			continue
		}
		if ch.FirstRecord > ch.LastRecord {
			return nil, fmt.Errorf("chapter %q: invalid record span %d..%d",
				ch.Title, ch.FirstRecord, ch.LastRecord)
		}
		return &ChapterSpan{
			Canto:       canto,
			Chapter:     chapter,
			FirstRecord: ch.FirstRecord,
			LastRecord:  ch.LastRecord,
		}, nil
	}

	return nil, fmt.Errorf("%s %w", needle, ErrChapterNotFound)
}

// writeCatalog persists the chapter catalog for inspection. Incidental:
// failures are logged, not returned.
func (d *DB) writeCatalog(chapters []ChapterInfo) {
	if d.catalogPath == "" {
		return
	}

	data, err := json.MarshalIndent(chapters, "", "    ")
	if err != nil {
		d.logger.Warn("failed to marshal chapter catalog", "error", err)
		return
	}
	if err := os.WriteFile(d.catalogPath, data, 0o644); err != nil {
		d.logger.Warn("failed to write chapter catalog", "path", d.catalogPath, "error", err)
		return
	}
	d.logger.Info("chapter catalog saved", "path", d.catalogPath)
}
