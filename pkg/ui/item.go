package ui

import (
	"fmt"

	"github.com/vanderheijden86/academy/pkg/model"
)

// LessonItem wraps model.Lesson with its progress to implement list.Item
type LessonItem struct {
	Lesson model.Lesson
	Entry  model.ProgressEntry
}

func (i LessonItem) Title() string {
	return i.Lesson.Title
}

func (i LessonItem) Description() string {
	return fmt.Sprintf("%s %s • %s", i.Lesson.StarRating.Stars(), i.Lesson.StarRating.Badge(), i.Lesson.Description)
}

// FilterValue is the title. Filtering is done by the search package before
// items reach the list, so the list's own fuzzy filter stays off.
func (i LessonItem) FilterValue() string {
	return i.Lesson.Title
}

// ChecklistCounts returns checked and total checklist items.
func (i LessonItem) ChecklistCounts() (checked, total int) {
	total = len(i.Lesson.ImplementationChecklist)
	return i.Entry.CheckedCount(total), total
}
