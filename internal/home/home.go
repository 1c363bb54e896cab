package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the namamala home directory.
	DefaultDirName = ".namamala"

	// NamesDirName is the subdirectory for per-chapter name stores.
	NamesDirName = "names"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// CatalogFileName is the chapter catalog side artifact.
	CatalogFileName = "chapters.json"
)

// Dir represents the namamala home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.namamala).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// NamesPath returns the directory holding per-chapter name stores.
func (d *Dir) NamesPath() string {
	return filepath.Join(d.path, NamesDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// CatalogPath returns the path of the chapter catalog artifact.
func (d *Dir) CatalogPath() string {
	return filepath.Join(d.path, CatalogFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.NamesPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create names directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
