// Package model defines the lesson catalog records and the per-lesson
// progress entries tracked by academy.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// StarRating is the fixed importance category of a lesson (1-5).
type StarRating int

// Rating bounds.
const (
	MinStarRating StarRating = 1
	MaxStarRating StarRating = 5
)

// AllStarRatings lists every category from most to least important,
// which is the order the sidebar and reports present them in.
var AllStarRatings = []StarRating{5, 4, 3, 2, 1}

// Valid reports whether r is within 1..5.
func (r StarRating) Valid() bool {
	return r >= MinStarRating && r <= MaxStarRating
}

// Label returns the bucket name shown next to the stars.
func (r StarRating) Label() string {
	switch r {
	case 5:
		return "NON-OPTIONAL"
	case 4:
		return "High Impact"
	case 3:
		return "Operational"
	case 2:
		return "Supporting"
	case 1:
		return "Nice-to-have"
	default:
		return "Unrated"
	}
}

// Badge is the short tag shown on a lesson: the label for 5, "N-Star" below.
func (r StarRating) Badge() string {
	if r == MaxStarRating {
		return r.Label()
	}
	return fmt.Sprintf("%d-Star", int(r))
}

// Stars renders r as filled and empty stars, e.g. "★★★☆☆".
func (r StarRating) Stars() string {
	n := int(r)
	if n < 0 {
		n = 0
	}
	if n > int(MaxStarRating) {
		n = int(MaxStarRating)
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", int(MaxStarRating)-n)
}

// Lesson is one unit of instructional content. Lessons are loaded once and
// never mutated.
type Lesson struct {
	ID                      string     `json:"id" yaml:"id"`
	Title                   string     `json:"title" yaml:"title"`
	Description             string     `json:"description,omitempty" yaml:"description,omitempty"`
	Content                 string     `json:"content" yaml:"content"`
	StarRating              StarRating `json:"star_rating" yaml:"star_rating"`
	ImplementationChecklist []string   `json:"implementation_checklist" yaml:"implementation_checklist"`
	QuickInsight            string     `json:"quick_insight,omitempty" yaml:"quick_insight,omitempty"`
}

// Validation errors.
var (
	ErrMissingID     = errors.New("lesson id is required")
	ErrMissingTitle  = errors.New("lesson title is required")
	ErrInvalidRating = errors.New("star rating must be between 1 and 5")
)

// Validate checks the invariants a catalog entry must satisfy.
func (l Lesson) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("%s: %w", l.ID, ErrMissingTitle)
	}
	if !l.StarRating.Valid() {
		return fmt.Errorf("%s: %w (got %d)", l.ID, ErrInvalidRating, l.StarRating)
	}
	return nil
}

// HasChecklist reports whether the lesson carries any action items.
func (l Lesson) HasChecklist() bool {
	return len(l.ImplementationChecklist) > 0
}
