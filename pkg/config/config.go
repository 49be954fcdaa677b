// Package config handles loading and saving academy configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/academy/config.yaml
//   - State:   ~/.local/state/academy/ (progress store, debug log)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends understood by internal/storage.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// CatalogConfig selects the lesson datasets.
type CatalogConfig struct {
	Paths []string `yaml:"paths,omitempty"` // Dataset files, concatenated in order; empty = bundled catalog
}

// StorageConfig selects where progress is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend,omitempty"` // file, sqlite, memory
	Path    string `yaml:"path,omitempty"`    // Empty = backend default under StateDir
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	Sidebar         bool `yaml:"sidebar"`                    // Show category sidebar on wide terminals
	DefaultCategory int  `yaml:"default_category,omitempty"` // 1-5 preselects a star filter, 0 = none
	Watch           bool `yaml:"watch,omitempty"`            // Reload datasets when they change on disk
}

// DebugConfig controls debug logging.
type DebugConfig struct {
	LogFile string `yaml:"log_file,omitempty"`
}

// Config is the top-level configuration for academy.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog,omitempty"`
	Storage StorageConfig `yaml:"storage,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty"`
	Debug   DebugConfig   `yaml:"debug,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendFile,
		},
		UI: UIConfig{
			Sidebar: true,
		},
	}
}

// ConfigDir returns the XDG config directory for academy.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "academy")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "academy")
}

// StateDir returns the XDG state directory for academy.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "academy")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "academy")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ApplyEnv overlays ACADEMY_* environment variables onto cfg.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("ACADEMY_CATALOG")); v != "" {
		var paths []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		c.Catalog.Paths = paths
	}
	if v := strings.TrimSpace(os.Getenv("ACADEMY_STORAGE_BACKEND")); v != "" {
		c.Storage.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("ACADEMY_STORAGE_PATH")); v != "" {
		c.Storage.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("ACADEMY_WATCH")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.Watch = b
		}
	}
	c.normalize()
}

// StoragePath returns the configured store location, or the backend's
// default file under StateDir.
func (c Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	dir := StateDir()
	if dir == "" {
		dir = "."
	}
	switch c.Storage.Backend {
	case BackendSQLite:
		return filepath.Join(dir, "progress.db")
	case BackendMemory:
		return ""
	default:
		return filepath.Join(dir, "progress.json")
	}
}

func (c *Config) normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	c.Storage.Path = expandHome(c.Storage.Path)
	for i := range c.Catalog.Paths {
		c.Catalog.Paths[i] = expandHome(c.Catalog.Paths[i])
	}
	c.Debug.LogFile = expandHome(c.Debug.LogFile)
	if c.UI.DefaultCategory < 0 || c.UI.DefaultCategory > 5 {
		c.UI.DefaultCategory = 0
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
