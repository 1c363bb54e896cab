package namestore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vedabase-tools/namamala/internal/types"
)

// Store is the per-chapter name store: one JSON file per (canto, chapter)
// holding the ordered sequence of records found so far. Appends are
// read-modify-write over the whole file; the store assumes a single
// writer per chapter key.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a store rooted at dir.
func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// Path returns the store file for a chapter.
func (s *Store) Path(canto, chapter int) string {
	return filepath.Join(s.dir, fmt.Sprintf("sb_canto%d_chapter%d_names.json", canto, chapter))
}

// LoadExclusions returns the names already recorded for a chapter.
// A missing or unreadable store yields an empty set with a logged
// warning; it never fails the caller.
func (s *Store) LoadExclusions(canto, chapter int) []string {
	records, err := s.load(canto, chapter)
	if err != nil {
		s.logger.Warn("no existing names to exclude",
			"path", s.Path(canto, chapter), "error", err)
		return nil
	}

	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	if len(names) > 0 {
		s.logger.Info("loaded existing names",
			"count", len(names), "path", s.Path(canto, chapter))
	}
	return names
}

// Append adds new records to a chapter's store, deduplicating by
// normalized name against both the stored records and the incoming batch.
// Returns the number of records actually added.
func (s *Store) Append(canto, chapter int, records []types.NameRecord) (int, error) {
	existing, err := s.load(canto, chapter)
	if err != nil {
		// Missing or corrupt file: start from empty rather than failing.
		existing = nil
	}

	seen := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		seen[Normalize(r.Name)] = struct{}{}
	}

	added := 0
	for _, r := range records {
		key := Normalize(r.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		existing = append(existing, r)
		added++
	}

	if err := s.write(canto, chapter, existing); err != nil {
		return 0, err
	}

	s.logger.Info("appended name records",
		"added", added, "skipped", len(records)-added, "total", len(existing),
		"path", s.Path(canto, chapter))
	return added, nil
}

func (s *Store) load(canto, chapter int) ([]types.NameRecord, error) {
	data, err := os.ReadFile(s.Path(canto, chapter))
	if err != nil {
		return nil, err
	}

	var records []types.NameRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corrupt name store: %w", err)
	}
	return records, nil
}

// write persists the full record sequence via temp file + rename so a
// failed write cannot corrupt the existing store.
func (s *Store) write(canto, chapter int, records []types.NameRecord) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal name records: %w", err)
	}

	path := s.Path(canto, chapter)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write name store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace name store: %w", err)
	}
	return nil
}
