package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/academy/pkg/model"
)

// Summary aggregates everything the stats command and report print.
type Summary struct {
	TotalLessons     int             `json:"total_lessons"`
	CompletedLessons int             `json:"completed_lessons"`
	Overall          int             `json:"overall_percent"`
	Categories       []CategoryStats `json:"categories"`

	// Checklist completion over lessons that have a checklist.
	ChecklistLessons int     `json:"checklist_lessons"`
	ChecklistItems   int     `json:"checklist_items"`
	ChecklistChecked int     `json:"checklist_checked"`
	ChecklistMean    float64 `json:"checklist_mean"`
	ChecklistStdDev  float64 `json:"checklist_stddev"`
}

// Summarize computes a Summary for the given catalog and progress.
func Summarize(lessons []model.Lesson, progress model.ProgressMap) Summary {
	s := Summary{
		TotalLessons: len(lessons),
		Overall:      OverallProgress(lessons, progress),
		Categories:   CategoryBreakdown(lessons, progress),
	}

	var ratios []float64
	for _, l := range lessons {
		entry := progress[l.ID]
		if entry.Completed {
			s.CompletedLessons++
		}
		n := len(l.ImplementationChecklist)
		if n == 0 {
			continue
		}
		checked := entry.CheckedCount(n)
		s.ChecklistLessons++
		s.ChecklistItems += n
		s.ChecklistChecked += checked
		ratios = append(ratios, 100*float64(checked)/float64(n))
	}

	switch len(ratios) {
	case 0:
	case 1:
		s.ChecklistMean = ratios[0]
	default:
		mean, std := stat.MeanStdDev(ratios, nil)
		s.ChecklistMean = roundTo(mean, 1)
		s.ChecklistStdDev = roundTo(std, 1)
	}
	s.ChecklistMean = roundTo(s.ChecklistMean, 1)
	return s
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
