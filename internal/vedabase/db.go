// Package vedabase reads the hierarchical scriptural corpus from its
// sqlite file: the chapter catalog from the contents tree and the raw
// verse text rows, segmented into clean verse units.
package vedabase

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// Config configures corpus access.
type Config struct {
	// Path is the sqlite vedabase file.
	Path string
	// CatalogPath, if set, is where the located chapter catalog is written
	// as a JSON side artifact for inspection.
	CatalogPath string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DB provides read access to the vedabase corpus.
type DB struct {
	db          *sql.DB
	catalogPath string
	logger      *slog.Logger
}

// Open opens the vedabase sqlite file.
func Open(cfg Config) (*DB, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &DB{
		db:          db,
		catalogPath: cfg.CatalogPath,
		logger:      logger,
	}, nil
}

// Close closes the underlying database handle.
func (d *DB) Close() error {
	return d.db.Close()
}
