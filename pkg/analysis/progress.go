// Package analysis derives completion statistics from the lesson catalog
// and the progress map. Every function is pure and recomputed on demand.
package analysis

import (
	"math"

	"github.com/vanderheijden86/academy/pkg/model"
)

// Percent returns round(100*part/whole) clamped to [0,100]; 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	if part >= whole {
		return 100
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// OverallProgress is the share of lessons marked complete. Entries for ids
// outside lessons are ignored.
func OverallProgress(lessons []model.Lesson, progress model.ProgressMap) int {
	done := 0
	for _, l := range lessons {
		if progress[l.ID].Completed {
			done++
		}
	}
	return Percent(done, len(lessons))
}

// CategoryProgress is OverallProgress restricted to one star rating.
func CategoryProgress(lessons []model.Lesson, progress model.ProgressMap, rating model.StarRating) int {
	total, done := 0, 0
	for _, l := range lessons {
		if l.StarRating != rating {
			continue
		}
		total++
		if progress[l.ID].Completed {
			done++
		}
	}
	return Percent(done, total)
}

// ChecklistProgress is the share of the lesson's checklist items checked.
// Only indices inside the checklist count.
func ChecklistProgress(lesson model.Lesson, progress model.ProgressMap) int {
	n := len(lesson.ImplementationChecklist)
	return Percent(progress[lesson.ID].CheckedCount(n), n)
}

// CategoryStats is one row of CategoryBreakdown.
type CategoryStats struct {
	Rating    model.StarRating `json:"rating"`
	Label     string           `json:"label"`
	Lessons   int              `json:"lessons"`
	Completed int              `json:"completed"`
	Percent   int              `json:"percent"`
}

// CategoryBreakdown returns one row per star rating, 5 down to 1, including
// empty categories.
func CategoryBreakdown(lessons []model.Lesson, progress model.ProgressMap) []CategoryStats {
	rows := make([]CategoryStats, 0, len(model.AllStarRatings))
	byRating := make(map[model.StarRating]*CategoryStats, len(model.AllStarRatings))
	for _, r := range model.AllStarRatings {
		rows = append(rows, CategoryStats{Rating: r, Label: r.Label()})
	}
	for i := range rows {
		byRating[rows[i].Rating] = &rows[i]
	}

	for _, l := range lessons {
		row, ok := byRating[l.StarRating]
		if !ok {
			continue
		}
		row.Lessons++
		if progress[l.ID].Completed {
			row.Completed++
		}
	}
	for i := range rows {
		rows[i].Percent = Percent(rows[i].Completed, rows[i].Lessons)
	}
	return rows
}
