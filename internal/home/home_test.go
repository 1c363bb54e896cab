package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_ExplicitPath(t *testing.T) {
	d, err := New("/tmp/custom-home")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if d.Path() != "/tmp/custom-home" {
		t.Errorf("Path() = %q", d.Path())
	}
}

func TestNew_DefaultPath(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, DefaultDirName)
	if d.Path() != want {
		t.Errorf("Path() = %q, want %q", d.Path(), want)
	}
}

func TestDir_SubPaths(t *testing.T) {
	d, _ := New("/data/nm")

	if got := d.NamesPath(); got != filepath.Join("/data/nm", NamesDirName) {
		t.Errorf("NamesPath() = %q", got)
	}
	if got := d.ConfigPath(); got != filepath.Join("/data/nm", ConfigFileName) {
		t.Errorf("ConfigPath() = %q", got)
	}
	if got := d.CatalogPath(); got != filepath.Join("/data/nm", CatalogFileName) {
		t.Errorf("CatalogPath() = %q", got)
	}
}

func TestDir_EnsureExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nm-home")
	d, _ := New(root)

	if d.Exists() {
		t.Fatal("Exists() = true before creation")
	}
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}
	if !d.Exists() {
		t.Error("Exists() = false after creation")
	}

	info, err := os.Stat(d.NamesPath())
	if err != nil || !info.IsDir() {
		t.Errorf("names subdirectory not created: %v", err)
	}

	// Idempotent.
	if err := d.EnsureExists(); err != nil {
		t.Errorf("second EnsureExists() error = %v", err)
	}
}

func TestDir_ConfigExists(t *testing.T) {
	root := t.TempDir()
	d, _ := New(root)

	if d.ConfigExists() {
		t.Fatal("ConfigExists() = true with no config file")
	}
	if err := os.WriteFile(d.ConfigPath(), []byte("defaults:\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !d.ConfigExists() {
		t.Error("ConfigExists() = false after writing config")
	}
}
