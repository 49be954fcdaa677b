package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Storage.Backend != BackendFile {
		t.Errorf("expected default backend %q, got %q", BackendFile, cfg.Storage.Backend)
	}
	if !cfg.UI.Sidebar {
		t.Error("expected sidebar to be enabled by default")
	}
	if len(cfg.Catalog.Paths) != 0 {
		t.Errorf("expected bundled catalog by default, got %v", cfg.Catalog.Paths)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("expected default config, got backend %q", cfg.Storage.Backend)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
catalog:
  paths:
    - ~/lessons/core.json
    - /abs/extra.yaml
storage:
  backend: SQLite
  path: /tmp/academy.db
ui:
  sidebar: false
  default_category: 5
  watch: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if len(cfg.Catalog.Paths) != 2 {
		t.Fatalf("expected 2 catalog paths, got %d", len(cfg.Catalog.Paths))
	}
	home, _ := os.UserHomeDir()
	if cfg.Catalog.Paths[0] != filepath.Join(home, "lessons/core.json") {
		t.Errorf("expected ~ expansion, got %q", cfg.Catalog.Paths[0])
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected backend normalized to sqlite, got %q", cfg.Storage.Backend)
	}
	if cfg.StoragePath() != "/tmp/academy.db" {
		t.Errorf("expected explicit storage path, got %q", cfg.StoragePath())
	}
	if cfg.UI.Sidebar {
		t.Error("expected sidebar disabled")
	}
	if cfg.UI.DefaultCategory != 5 || !cfg.UI.Watch {
		t.Errorf("unexpected ui config: %+v", cfg.UI)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("expected defaults alongside error, got %+v", cfg.Storage)
	}
}

func TestLoadFrom_ClampsDefaultCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  default_category: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.DefaultCategory != 0 {
		t.Errorf("expected out-of-range category reset to 0, got %d", cfg.UI.DefaultCategory)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Storage.Backend = BackendSQLite
	cfg.UI.DefaultCategory = 3

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Storage.Backend != BackendSQLite || got.UI.DefaultCategory != 3 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ACADEMY_CATALOG", " a.json, ,b.yaml ")
	t.Setenv("ACADEMY_STORAGE_BACKEND", "memory")
	t.Setenv("ACADEMY_STORAGE_PATH", "")
	t.Setenv("ACADEMY_WATCH", "true")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if len(cfg.Catalog.Paths) != 2 || cfg.Catalog.Paths[0] != "a.json" || cfg.Catalog.Paths[1] != "b.yaml" {
		t.Errorf("unexpected catalog paths %v", cfg.Catalog.Paths)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("expected memory backend, got %q", cfg.Storage.Backend)
	}
	if cfg.StoragePath() != "" {
		t.Errorf("memory backend should have no path, got %q", cfg.StoragePath())
	}
	if !cfg.UI.Watch {
		t.Error("expected watch enabled from env")
	}
}

func TestStoragePathDefaultsUnderStateDir(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	cfg := DefaultConfig()
	if got, want := cfg.StoragePath(), filepath.Join(state, "academy", "progress.json"); got != want {
		t.Errorf("file StoragePath() = %q, want %q", got, want)
	}
	cfg.Storage.Backend = BackendSQLite
	if got, want := cfg.StoragePath(), filepath.Join(state, "academy", "progress.db"); got != want {
		t.Errorf("sqlite StoragePath() = %q, want %q", got, want)
	}
}
