// Package search computes the visible subset of lessons for a free-text
// term and an optional star-rating category.
package search

import (
	"strings"

	"github.com/vanderheijden86/academy/pkg/model"
)

// AnyCategory disables the category predicate.
const AnyCategory model.StarRating = 0

// Filter returns the lessons whose title or content contains term
// (case-insensitive) and whose rating equals category, unless category is
// AnyCategory. An empty term matches everything. Catalog order is kept.
func Filter(lessons []model.Lesson, term string, category model.StarRating) []model.Lesson {
	needle := fold(term)
	out := make([]model.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if category != AnyCategory && l.StarRating != category {
			continue
		}
		if needle != "" && !strings.Contains(fold(l.Title), needle) && !strings.Contains(fold(l.Content), needle) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func fold(s string) string {
	return strings.ToLower(s)
}
