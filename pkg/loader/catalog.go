// Package loader reads lesson datasets and exposes them as an immutable,
// ordered Catalog.
package loader

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/academy/pkg/model"
)

// ErrLessonNotFound is returned by Lookup for ids absent from the catalog.
var ErrLessonNotFound = errors.New("lesson not found")

// Catalog is the ordered lesson set. Order is navigation order. A Catalog
// is never mutated after construction; reloads build a new one.
type Catalog struct {
	lessons []model.Lesson
	index   map[string]int
}

// NewCatalog builds a catalog from lessons, dropping invalid records and
// later duplicates of an id.
func NewCatalog(lessons []model.Lesson) *Catalog {
	return newCatalog(lessons, ParseOptions{}.warn())
}

func newCatalog(lessons []model.Lesson, warn func(string)) *Catalog {
	c := &Catalog{
		lessons: make([]model.Lesson, 0, len(lessons)),
		index:   make(map[string]int, len(lessons)),
	}
	for _, l := range lessons {
		if err := l.Validate(); err != nil {
			warn(fmt.Sprintf("skipping invalid lesson: %v", err))
			continue
		}
		if _, dup := c.index[l.ID]; dup {
			warn(fmt.Sprintf("skipping duplicate lesson id %q", l.ID))
			continue
		}
		c.index[l.ID] = len(c.lessons)
		c.lessons = append(c.lessons, l)
	}
	return c
}

// Lessons returns the catalog in order. Callers must not modify the result.
func (c *Catalog) Lessons() []model.Lesson {
	if c == nil {
		return nil
	}
	return c.lessons
}

// Len returns the number of lessons.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.lessons)
}

// At returns the lesson at position i.
func (c *Catalog) At(i int) (model.Lesson, bool) {
	if c == nil || i < 0 || i >= len(c.lessons) {
		return model.Lesson{}, false
	}
	return c.lessons[i], true
}

// Index returns the catalog position of id, or -1.
func (c *Catalog) Index(id string) int {
	if c == nil {
		return -1
	}
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Get looks up a lesson by id.
func (c *Catalog) Get(id string) (model.Lesson, bool) {
	return c.At(c.Index(id))
}

// Lookup is Get with a wrapped ErrLessonNotFound on a miss.
func (c *Catalog) Lookup(id string) (model.Lesson, error) {
	l, ok := c.Get(id)
	if !ok {
		return model.Lesson{}, fmt.Errorf("%w: %q", ErrLessonNotFound, id)
	}
	return l, nil
}

// Previous returns the lesson before id. It reports false at the start of
// the catalog and for unknown ids; there is no wrapping.
func (c *Catalog) Previous(id string) (model.Lesson, bool) {
	i := c.Index(id)
	if i <= 0 {
		return model.Lesson{}, false
	}
	return c.At(i - 1)
}

// Next returns the lesson after id, false at the end or for unknown ids.
func (c *Catalog) Next(id string) (model.Lesson, bool) {
	i := c.Index(id)
	if i < 0 {
		return model.Lesson{}, false
	}
	return c.At(i + 1)
}
