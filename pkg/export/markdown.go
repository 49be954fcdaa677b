// Package export writes lessons and progress out of the app: Markdown
// files for reading elsewhere and SVG/PNG progress reports.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/academy/pkg/analysis"
	"github.com/vanderheijden86/academy/pkg/model"
	"github.com/vanderheijden86/academy/pkg/render"
)

// Package-level compiled regex for slug creation (avoids recompilation per call)
var slugNonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

// maxParallelWrites bounds concurrent file writes in ExportMarkdown.
const maxParallelWrites = 8

// Slug turns a lesson id into a file-safe name.
func Slug(id string) string {
	s := slugNonAlphanumericRegex.ReplaceAllString(strings.ToLower(id), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "lesson"
	}
	return s
}

// LessonMarkdown renders one lesson, its checklist state and quick insight
// as a Markdown document.
func LessonMarkdown(lesson model.Lesson, entry model.ProgressEntry) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", lesson.Title))

	status := "Not completed"
	if entry.Completed {
		status = "Completed ✓"
	}
	sb.WriteString(fmt.Sprintf("%s **%s** · %s\n\n", lesson.StarRating.Stars(), lesson.StarRating.Badge(), status))

	if d := strings.TrimSpace(lesson.Description); d != "" {
		sb.WriteString(fmt.Sprintf("*%s*\n\n", d))
	}
	sb.WriteString("---\n\n")

	sb.WriteString(render.ToMarkdown(render.Render(lesson.Content)))
	sb.WriteString("\n")

	if n := len(lesson.ImplementationChecklist); n > 0 {
		sb.WriteString(fmt.Sprintf("\n## Implementation Checklist (%d%%)\n\n",
			analysis.ChecklistProgress(lesson, model.ProgressMap{lesson.ID: entry})))
		for i, item := range lesson.ImplementationChecklist {
			box := " "
			if entry.Checked(i) {
				box = "x"
			}
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", box, item))
		}
	}

	if q := strings.TrimSpace(lesson.QuickInsight); q != "" {
		sb.WriteString(fmt.Sprintf("\n> 💡 **Quick Insight:** %s\n", q))
	}
	return sb.String()
}

// IndexMarkdown renders the catalog table of contents with progress.
func IndexMarkdown(title string, lessons []model.Lesson, progress model.ProgressMap, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("*Generated: %s*\n\n", now.Format(time.RFC1123)))
	sb.WriteString(fmt.Sprintf("Overall progress: **%d%%** (%d lessons)\n\n",
		analysis.OverallProgress(lessons, progress), len(lessons)))

	sb.WriteString("| Category | Lessons | Complete |\n|---|---:|---:|\n")
	for _, row := range analysis.CategoryBreakdown(lessons, progress) {
		sb.WriteString(fmt.Sprintf("| %s %s | %d | %d%% |\n", row.Rating.Stars(), row.Label, row.Lessons, row.Percent))
	}
	sb.WriteString("\n## Lessons\n\n")

	names := fileNames(lessons)
	for i, l := range lessons {
		mark := " "
		if progress[l.ID].Completed {
			mark = "x"
		}
		sb.WriteString(fmt.Sprintf("%d. [%s] [%s](%s) · %s\n", i+1, mark, l.Title, names[i], l.StarRating.Badge()))
	}
	return sb.String()
}

// fileNames assigns each lesson a unique "<slug>.md", suffixing slugs that
// collide.
func fileNames(lessons []model.Lesson) []string {
	used := make(map[string]bool, len(lessons))
	names := make([]string, len(lessons))
	for i, l := range lessons {
		base := Slug(l.ID)
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		used[name] = true
		names[i] = name + ".md"
	}
	return names
}

// MarkdownResult reports what ExportMarkdown wrote.
type MarkdownResult struct {
	Dir   string
	Files []string // lesson files in catalog order, then README.md
}

// ExportMarkdown writes one file per lesson plus README.md into dir.
func ExportMarkdown(ctx context.Context, dir, title string, lessons []model.Lesson, progress model.ProgressMap) (MarkdownResult, error) {
	if dir == "" {
		return MarkdownResult{}, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return MarkdownResult{}, fmt.Errorf("create output dir: %w", err)
	}

	files := fileNames(lessons)
	for i := range files {
		files[i] = filepath.Join(dir, files[i])
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelWrites)
	for i, l := range lessons {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			body := LessonMarkdown(l, progress.Entry(l.ID))
			if err := os.WriteFile(files[i], []byte(body), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", filepath.Base(files[i]), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MarkdownResult{}, err
	}

	index := filepath.Join(dir, "README.md")
	if err := os.WriteFile(index, []byte(IndexMarkdown(title, lessons, progress, time.Now())), 0o644); err != nil {
		return MarkdownResult{}, fmt.Errorf("write index: %w", err)
	}
	return MarkdownResult{Dir: dir, Files: append(files, index)}, nil
}
