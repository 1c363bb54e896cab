package vedabase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	// tagPattern matches a single markup tag. Non-greedy so adjacent or
	// nested tags are each removed individually.
	tagPattern = regexp.MustCompile(`<.*?>`)

	// markerPattern matches a whole-word verse marker: "TEXT 5" or
	// "TEXTS 5-7". Incidental uses of the bare words TEXT/TEXTS without
	// the numeric part are not boundaries.
	markerPattern = regexp.MustCompile(`\b(TEXT \d+|TEXTS \d+-\d+)\b`)
)

// Verses retrieves the raw text rows in span's inclusive record-id range
// and segments them into ordered verse units. Each returned unit starts
// with its verse marker ("TEXT n" or "TEXTS n-m"); the chapter-header
// fragment preceding the first marker is dropped, and a "TEXTS n-m" block
// stays a single unit.
func (d *DB) Verses(ctx context.Context, span *ChapterSpan) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT plain FROM texts WHERE recid >= ? AND recid <= ? ORDER BY recid`,
		span.FirstRecord, span.LastRecord)
	if err != nil {
		return nil, fmt.Errorf("query verse texts: %w", err)
	}
	defer rows.Close()

	var cleaned []string
	for rows.Next() {
		var plain string
		if err := rows.Scan(&plain); err != nil {
			return nil, fmt.Errorf("scan verse row: %w", err)
		}
		// Strip markup, preserving inter-word spacing.
		cleaned = append(cleaned, tagPattern.ReplaceAllString(plain, " "))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verse rows: %w", err)
	}

	return segment(strings.Join(cleaned, " ")), nil
}

// segment splits the chapter-wide blob at verse markers, reuniting each
// marker with the body that follows it.
func segment(blob string) []string {
	locs := markerPattern.FindAllStringIndex(blob, -1)

	pieces := make([]string, 0, len(locs)+1)
	prev := 0
	for _, loc := range locs {
		pieces = append(pieces, blob[prev:loc[0]])
		prev = loc[0]
	}
	pieces = append(pieces, blob[prev:])

	var verses []string
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if strings.HasPrefix(piece, "TEXT ") || strings.HasPrefix(piece, "TEXTS ") {
			verses = append(verses, piece)
		}
	}
	return verses
}
