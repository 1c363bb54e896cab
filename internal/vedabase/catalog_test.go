package vedabase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// newTestDB builds a small vedabase fixture: two cantos with one chapter
// each plus marked-up text rows for SB 1.1.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	return newTestDBWithCatalog(t, "")
}

func newTestDBWithCatalog(t *testing.T, catalogPath string) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vedabase.db")
	raw, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer raw.Close()

	stmts := []string{
		`CREATE TABLE contents (record INTEGER, title TEXT, level INTEGER, parent INTEGER, next_sibling INTEGER)`,
		`CREATE TABLE texts (recid INTEGER, plain TEXT)`,
		// Canto parents
		`INSERT INTO contents VALUES (1, 'Canto 1: Creation', 5, 0, 2)`,
		`INSERT INTO contents VALUES (2, 'Canto 2: The Cosmic Manifestation', 5, 0, 3)`,
		// Chapter nodes at level 6
		`INSERT INTO contents VALUES (100, 'SB 1.1: Questions by the Sages', 6, 1, 103)`,
		`INSERT INTO contents VALUES (104, 'SB 1.2: Divinity and Divine Service', 6, 1, 106)`,
		`INSERT INTO contents VALUES (200, 'SB 2.1: The First Step in God Realization', 6, 2, 203)`,
		// A level-6 node whose title does not match the label pattern
		`INSERT INTO contents VALUES (300, 'Preface', 6, 1, 301)`,
		// Text rows for SB 1.1
		`INSERT INTO texts VALUES (100, '<h1>Chapter One</h1>intro')`,
		`INSERT INTO texts VALUES (101, '<b>TEXT 1</b>om namo bhagavate vasudevaya first verse body')`,
		`INSERT INTO texts VALUES (102, '<b>TEXT 2</b>second verse body')`,
		`INSERT INTO texts VALUES (103, '<b>TEXTS 3-4</b>combined verse body')`,
	}
	for _, stmt := range stmts {
		if _, err := raw.Exec(stmt); err != nil {
			t.Fatalf("fixture statement %q: %v", stmt, err)
		}
	}

	db, err := Open(Config{
		Path:        path,
		CatalogPath: catalogPath,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return db
}

func TestCatalog(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	chapters, err := db.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	if len(chapters) != 3 {
		t.Fatalf("Catalog() returned %d chapters, want 3: %#v", len(chapters), chapters)
	}
	for _, ch := range chapters {
		if ch.Title == "Preface" {
			t.Error("non-matching node included in catalog")
		}
		if ch.FirstRecord > ch.LastRecord {
			t.Errorf("chapter %q has inverted span %d..%d", ch.Title, ch.FirstRecord, ch.LastRecord)
		}
	}
}

func TestLocate(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	span, err := db.Locate(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if span.FirstRecord != 100 || span.LastRecord != 103 {
		t.Errorf("Locate(1,1) span = %d..%d, want 100..103", span.FirstRecord, span.LastRecord)
	}
	if span.Canto != 1 || span.Chapter != 1 {
		t.Errorf("Locate(1,1) identity = (%d,%d)", span.Canto, span.Chapter)
	}

	span, err = db.Locate(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("Locate(2,1) error = %v", err)
	}
	if span.FirstRecord != 200 {
		t.Errorf("Locate(2,1) first record = %d, want 200", span.FirstRecord)
	}
}

func TestLocate_ChapterNotFound(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	tests := []struct {
		canto, chapter int
	}{
		{1, 3},
		{3, 1},
		{13, 1}, // beyond the corpus, always fails
	}
	for _, tt := range tests {
		_, err := db.Locate(context.Background(), tt.canto, tt.chapter)
		if !errors.Is(err, ErrChapterNotFound) {
			t.Errorf("Locate(%d,%d) error = %v, want ErrChapterNotFound", tt.canto, tt.chapter, err)
		}
	}
}

func TestCatalog_WritesSideArtifact(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "chapters.json")
	db := newTestDBWithCatalog(t, catalogPath)
	defer db.Close()

	if _, err := db.Catalog(context.Background()); err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	data, err := os.ReadFile(catalogPath)
	if err != nil {
		t.Fatalf("catalog artifact not written: %v", err)
	}
	var chapters []ChapterInfo
	if err := json.Unmarshal(data, &chapters); err != nil {
		t.Fatalf("catalog artifact is not valid JSON: %v", err)
	}
	if len(chapters) != 3 {
		t.Errorf("catalog artifact has %d chapters, want 3", len(chapters))
	}
}
