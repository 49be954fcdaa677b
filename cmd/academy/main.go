package main

import (
	// Marks scripted runs non-interactive before any terminal probing.
	_ "github.com/vanderheijden86/academy/internal/ttyguard"

	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/academy/pkg/debug"
	"github.com/vanderheijden86/academy/pkg/loader"
	"github.com/vanderheijden86/academy/pkg/model"
	"github.com/vanderheijden86/academy/pkg/search"
	"github.com/vanderheijden86/academy/pkg/ui"
	"github.com/vanderheijden86/academy/pkg/version"
	"github.com/vanderheijden86/academy/pkg/watcher"
)

func main() {
	err := newRootCmd().Execute()
	debug.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		flags     globalFlags
		routeFlag string
	)

	rootCmd := &cobra.Command{
		Use:           "academy",
		Short:         "Browse the RepeatMD Academy lessons and track your progress",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.jsonOut {
				_ = os.Setenv(loader.RobotEnvVar, "1")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return a.printList(search.Query{}, flags.jsonOut)
			}
			return a.runTUI(ui.ParseRoute(routeFlag))
		},
	}
	rootCmd.SetVersionTemplate("academy {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringSliceVar(&flags.catalog, "catalog", nil, "Lesson dataset files (.json, .jsonl, .yaml), concatenated in order")
	pf.StringVar(&flags.backend, "storage", "", "Progress backend: file, sqlite or memory")
	pf.StringVar(&flags.storePath, "store-path", "", "Progress store location")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "Keep progress in memory only")
	pf.BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	pf.BoolVar(&flags.jsonOut, "json", false, "Machine-readable JSON output where supported")
	rootCmd.Flags().StringVar(&routeFlag, "route", "/", "Start at a route, e.g. /lesson/<id>")

	rootCmd.AddCommand(
		newListCmd(&flags),
		newShowCmd(&flags),
		newOpenCmd(&flags),
		newPickCmd(&flags),
		newStatsCmd(&flags),
		newCompleteCmd(&flags),
		newCheckCmd(&flags),
		newExportCmd(&flags),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "academy %s\n", version.Version)
		},
	}
}

// runTUI starts the interactive browser at route, with live reload when
// dataset files are configured and watching is enabled.
func (a *app) runTUI(route ui.Route) error {
	opts := ui.Options{
		Route:   route,
		Query:   search.Query{Category: model.StarRating(a.cfg.UI.DefaultCategory)},
		Sidebar: a.cfg.UI.Sidebar,
	}

	if a.cfg.UI.Watch && len(a.cfg.Catalog.Paths) > 0 {
		w, err := watcher.WatchFiles(a.cfg.Catalog.Paths,
			watcher.WithOnChange(func(path string) { debug.Log("dataset changed: %s", path) }),
			watcher.WithOnError(func(err error) { debug.Log("watch: %v", err) }),
		)
		if err != nil {
			debug.Log("watch disabled: %v", err)
		} else {
			defer w.Stop()
			opts.Watcher = w
			opts.Reload = a.reloadCatalog
		}
	}

	return runTUIProgram(ui.NewModel(a.catalog, a.store, opts))
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set ACADEMY_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("ACADEMY_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
