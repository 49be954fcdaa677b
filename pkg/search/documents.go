package search

import (
	"strings"

	"github.com/vanderheijden86/academy/pkg/model"
)

// Index caches the case-folded text of each lesson so the list can be
// refiltered on every keystroke without folding the catalog again. Build a
// new Index when the catalog changes.
type Index struct {
	lessons []model.Lesson
	docs    []document
}

type document struct {
	title   string
	content string
}

// LessonDocument returns the folded text a lesson is matched against.
func LessonDocument(l model.Lesson) (title, content string) {
	return fold(l.Title), fold(l.Content)
}

// NewIndex folds every lesson once.
func NewIndex(lessons []model.Lesson) *Index {
	idx := &Index{lessons: lessons, docs: make([]document, len(lessons))}
	for i, l := range lessons {
		idx.docs[i].title, idx.docs[i].content = LessonDocument(l)
	}
	return idx
}

// Filter has the semantics of the package-level Filter.
func (idx *Index) Filter(q Query) []model.Lesson {
	needle := fold(q.Term)
	out := make([]model.Lesson, 0, len(idx.lessons))
	for i, l := range idx.lessons {
		if q.Category != AnyCategory && l.StarRating != q.Category {
			continue
		}
		d := idx.docs[i]
		if needle != "" && !strings.Contains(d.title, needle) && !strings.Contains(d.content, needle) {
			continue
		}
		out = append(out, l)
	}
	return out
}
