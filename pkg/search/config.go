package search

import (
	"fmt"

	"github.com/vanderheijden86/academy/pkg/model"
)

// Query is the pair of filter inputs driven by the search box and the
// category toggles.
type Query struct {
	Term     string
	Category model.StarRating
}

// IsZero reports whether the query matches every lesson.
func (q Query) IsZero() bool {
	return q.Term == "" && q.Category == AnyCategory
}

// String is the list heading for the query's category.
func (q Query) String() string {
	if q.Category == AnyCategory {
		return "All Lessons"
	}
	return fmt.Sprintf("%d-Star Lessons", q.Category)
}

// WithCategory toggles category: selecting the active one clears it.
func (q Query) WithCategory(r model.StarRating) Query {
	if q.Category == r {
		q.Category = AnyCategory
	} else {
		q.Category = r
	}
	return q
}

// Apply runs Filter with the query's inputs.
func (q Query) Apply(lessons []model.Lesson) []model.Lesson {
	return Filter(lessons, q.Term, q.Category)
}
