package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/academy/pkg/analysis"
	"github.com/vanderheijden86/academy/pkg/config"
	"github.com/vanderheijden86/academy/pkg/export"
	"github.com/vanderheijden86/academy/pkg/model"
	"github.com/vanderheijden86/academy/pkg/search"
	"github.com/vanderheijden86/academy/pkg/ui"
)

// withApp wraps a command body with app setup and teardown.
func withApp(flags *globalFlags, fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, *flags)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, a, args)
	}
}

// listRow is the JSON shape of one lesson in `academy list --json`.
type listRow struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	StarRating     int    `json:"star_rating"`
	Category       string `json:"category"`
	Completed      bool   `json:"completed"`
	ChecklistDone  int    `json:"checklist_done"`
	ChecklistTotal int    `json:"checklist_total"`
	Route          string `json:"route"`
}

func newListCmd(flags *globalFlags) *cobra.Command {
	var (
		searchTerm string
		stars      int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List lessons, optionally filtered by search term and star rating",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			if stars != 0 && !model.StarRating(stars).Valid() {
				return fmt.Errorf("--stars must be between %d and %d", model.MinStarRating, model.MaxStarRating)
			}
			return a.printList(search.Query{Term: searchTerm, Category: model.StarRating(stars)}, flags.jsonOut)
		}),
	}
	cmd.Flags().StringVarP(&searchTerm, "search", "s", "", "Case-insensitive match on title and content")
	cmd.Flags().IntVar(&stars, "stars", 0, "Only lessons with this star rating (1-5)")
	return cmd
}

// printList writes the filtered lessons as a table, or as JSON.
func (a *app) printList(q search.Query, jsonOut bool) error {
	lessons := q.Apply(a.catalog.Lessons())
	progress := a.store.Snapshot()

	rows := make([]listRow, 0, len(lessons))
	for _, l := range lessons {
		entry := progress.Entry(l.ID)
		rows = append(rows, listRow{
			ID:             l.ID,
			Title:          l.Title,
			StarRating:     int(l.StarRating),
			Category:       l.StarRating.Label(),
			Completed:      entry.Completed,
			ChecklistDone:  entry.CheckedCount(len(l.ImplementationChecklist)),
			ChecklistTotal: len(l.ImplementationChecklist),
			Route:          ui.LessonRoute(l.ID).String(),
		})
	}

	if jsonOut {
		return writeJSON(a, rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No lessons match your filters.")
		return nil
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "STARS", "ID", "TITLE", "CHECKLIST").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range rows {
		done := "[ ]"
		if r.Completed {
			done = "[✓]"
		}
		checklist := "-"
		if r.ChecklistTotal > 0 {
			checklist = fmt.Sprintf("%d/%d", r.ChecklistDone, r.ChecklistTotal)
		}
		t.Row(done, model.StarRating(r.StarRating).Stars(), r.ID, r.Title, checklist)
	}
	fmt.Fprintln(a.out, t.Render())
	fmt.Fprintf(a.out, "%s (%d)\n", q.String(), len(rows))
	return nil
}

func writeJSON(a *app, v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newShowCmd(flags *globalFlags) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <lesson-id>",
		Short: "Print a lesson with its checklist and progress",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			lesson, err := a.catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			entry := a.store.Entry(lesson.ID)

			if flags.jsonOut {
				return writeJSON(a, struct {
					model.Lesson
					Progress model.ProgressEntry `json:"progress"`
				}{lesson, entry})
			}

			md := export.LessonMarkdown(lesson, entry)
			fd := int(os.Stdout.Fd())
			if raw || !term.IsTerminal(fd) {
				fmt.Fprint(a.out, md)
				return nil
			}

			width := 80
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				width = w
			}
			out, err := ui.NewMarkdownRenderer(width).Render(md)
			if err != nil {
				fmt.Fprint(a.out, md)
				return nil
			}
			fmt.Fprintln(a.out, out)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without terminal styling")
	return cmd
}

func newOpenCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "open <lesson-id>",
		Short: "Open the browser directly on a lesson",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			lesson, err := a.catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			return a.runTUI(ui.LessonRoute(lesson.ID))
		}),
	}
}

// isTerminal checks if stdin is connected to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

func newPickCmd(flags *globalFlags) *cobra.Command {
	var stars int
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a lesson from a menu and open it",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			lessons := search.Query{Category: model.StarRating(stars)}.Apply(a.catalog.Lessons())
			if len(lessons) == 0 {
				return errors.New("no lessons to pick from")
			}

			options := make([]huh.Option[string], 0, len(lessons))
			for _, l := range lessons {
				mark := "  "
				if a.store.IsCompleted(l.ID) {
					mark = "✓ "
				}
				options = append(options, huh.NewOption(mark+l.StarRating.Stars()+"  "+l.Title, l.ID))
			}

			var id string
			form := newForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("Which lesson?").
						Options(options...).
						Value(&id),
				),
			)
			if err := form.Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}
			return a.runTUI(ui.LessonRoute(id))
		}),
	}
	cmd.Flags().IntVar(&stars, "stars", 0, "Only offer lessons with this star rating (1-5)")
	return cmd
}

func newStatsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show overall, per-category and checklist progress",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			s := analysis.Summarize(a.catalog.Lessons(), a.store.Snapshot())
			if flags.jsonOut {
				return writeJSON(a, s)
			}

			fmt.Fprintf(a.out, "Overall: %d%% (%d/%d lessons)\n\n", s.Overall, s.CompletedLessons, s.TotalLessons)
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("CATEGORY", "DONE", "PROGRESS")
			for _, c := range s.Categories {
				t.Row(c.Label, fmt.Sprintf("%d/%d", c.Completed, c.Lessons), fmt.Sprintf("%d%%", c.Percent))
			}
			fmt.Fprintln(a.out, t.Render())
			if s.ChecklistLessons > 0 {
				fmt.Fprintf(a.out, "\nChecklists: %d/%d items across %d lessons (mean %.1f%%, σ %.1f%%)\n",
					s.ChecklistChecked, s.ChecklistItems, s.ChecklistLessons,
					s.ChecklistMean, s.ChecklistStdDev)
			}
			return nil
		}),
	}
}

func newCompleteCmd(flags *globalFlags) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "complete <lesson-id>",
		Short: "Mark a lesson complete",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			lesson, err := a.catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			if err := a.store.SetCompleted(lesson.ID, !undo); err != nil {
				return fmt.Errorf("save progress: %w", err)
			}
			state := "complete"
			if undo {
				state = "not complete"
			}
			fmt.Fprintf(a.out, "%s: %s\n", lesson.Title, state)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the lesson not complete")
	return cmd
}

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "check <lesson-id> <item-number>",
		Short: "Check off a checklist item (numbered from 1)",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			lesson, err := a.catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid item number %q", args[1])
			}
			total := len(lesson.ImplementationChecklist)
			if total == 0 {
				return fmt.Errorf("lesson %q has no checklist", lesson.ID)
			}
			if n < 1 || n > total {
				return fmt.Errorf("item number must be between 1 and %d", total)
			}
			if err := a.store.SetChecklistItem(lesson.ID, n-1, !undo); err != nil {
				return fmt.Errorf("save progress: %w", err)
			}
			entry := a.store.Entry(lesson.ID)
			mark := "[ ]"
			if entry.Checked(n - 1) {
				mark = "[✓]"
			}
			fmt.Fprintf(a.out, "%s %s (%d/%d)\n", mark, lesson.ImplementationChecklist[n-1], entry.CheckedCount(total), total)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Uncheck the item")
	return cmd
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export lessons or a progress report",
	}

	var mdOut, mdTitle string
	mdCmd := &cobra.Command{
		Use:   "markdown",
		Short: "Write every lesson and an index as markdown files",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			res, err := export.ExportMarkdown(a.ctx, mdOut, mdTitle, a.catalog.Lessons(), a.store.Snapshot())
			if err != nil {
				return err
			}
			if flags.jsonOut {
				return writeJSON(a, res)
			}
			fmt.Fprintf(a.out, "Wrote %d files to %s\n", len(res.Files), res.Dir)
			return nil
		}),
	}
	mdCmd.Flags().StringVarP(&mdOut, "out", "o", "academy-export", "Output directory")
	mdCmd.Flags().StringVar(&mdTitle, "title", ui.AppTitle, "Index page title")

	var reportOut, reportFormat, reportTitle string
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Render a progress chart as SVG or PNG",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			path, err := export.SaveProgressReport(export.ReportOptions{
				Path:    reportOut,
				Format:  reportFormat,
				Title:   reportTitle,
				Summary: analysis.Summarize(a.catalog.Lessons(), a.store.Snapshot()),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %s\n", path)
			return nil
		}),
	}
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "academy-progress.svg", "Output file")
	reportCmd.Flags().StringVar(&reportFormat, "format", "", "svg or png (default: from the file extension)")
	reportCmd.Flags().StringVar(&reportTitle, "title", ui.AppTitle+" Progress", "Chart title")

	cmd.AddCommand(mdCmd, reportCmd)
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the academy config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config to the XDG config directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigPath()
			if path == "" {
				return errors.New("cannot determine config directory")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	cmd.AddCommand(initCmd)
	return cmd
}
