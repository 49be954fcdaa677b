package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/academy/internal/storage"
	"github.com/vanderheijden86/academy/pkg/config"
	"github.com/vanderheijden86/academy/pkg/debug"
	"github.com/vanderheijden86/academy/pkg/loader"
	"github.com/vanderheijden86/academy/pkg/progress"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	catalog   []string
	backend   string
	storePath string
	ephemeral bool
	debug     bool
	jsonOut   bool
}

// app is the wired set of components a command runs against.
type app struct {
	ctx     context.Context
	cfg     config.Config
	kv      storage.KV
	store   *progress.Store
	catalog *loader.Catalog
	out     io.Writer
	jsonOut bool
}

// newApp loads .env, config and env overrides, applies flags, then opens
// the progress store and the catalog.
func newApp(cmd *cobra.Command, flags globalFlags) (*app, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		debug.Log(".env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		// Non-fatal: continue with defaults
		debug.Log("config: %v", err)
		cfg = config.DefaultConfig()
	}
	cfg.ApplyEnv()
	applyFlags(&cfg, flags)

	if cfg.Debug.LogFile != "" {
		if err := debug.SetOutput(cfg.Debug.LogFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if flags.debug {
		debug.SetEnabled(true)
	}

	kv, err := storage.Open(cfg.Storage.Backend, cfg.StoragePath())
	if err != nil {
		return nil, fmt.Errorf("open progress store: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a := &app{
		ctx:     ctx,
		cfg:     cfg,
		kv:      kv,
		store:   progress.Open(kv),
		out:     cmd.OutOrStdout(),
		jsonOut: flags.jsonOut,
	}

	a.catalog, err = a.loadCatalog()
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	debug.Log("app: %d lessons, backend=%s store=%q key=%s", a.catalog.Len(), cfg.Storage.Backend, cfg.StoragePath(), a.store.Key())
	return a, nil
}

func applyFlags(cfg *config.Config, flags globalFlags) {
	if len(flags.catalog) > 0 {
		cfg.Catalog.Paths = flags.catalog
	}
	if flags.backend != "" {
		cfg.Storage.Backend = flags.backend
	}
	if flags.storePath != "" {
		cfg.Storage.Path = flags.storePath
	}
	if flags.ephemeral {
		cfg.Storage.Backend = config.BackendMemory
		cfg.Storage.Path = ""
	}
}

func (a *app) loadCatalog() (*loader.Catalog, error) {
	cat, err := loader.Load(a.ctx, a.cfg.Catalog.Paths, loader.ParseOptions{})
	if err != nil {
		return nil, fmt.Errorf("load lessons: %w", err)
	}
	return cat, nil
}

// reloadCatalog is the TUI's reload hook. Warnings go to the debug log
// because stderr belongs to the TUI.
func (a *app) reloadCatalog() (*loader.Catalog, error) {
	return loader.Load(a.ctx, a.cfg.Catalog.Paths, loader.ParseOptions{
		WarningHandler: func(msg string) { debug.Log("reload: %s", msg) },
	})
}

// Close releases the storage backend.
func (a *app) Close() {
	if err := a.kv.Close(); err != nil {
		debug.Log("close store: %v", err)
	}
}

