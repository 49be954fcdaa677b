package loader_test

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/academy/pkg/loader"
	"github.com/vanderheijden86/academy/pkg/model"
)

func threeLessons() *loader.Catalog {
	return loader.NewCatalog([]model.Lesson{
		{ID: "first", Title: "First", StarRating: 5},
		{ID: "middle", Title: "Middle", StarRating: 3},
		{ID: "last", Title: "Last", StarRating: 1},
	})
}

func TestCatalogGet(t *testing.T) {
	cat := threeLessons()
	if l, ok := cat.Get("middle"); !ok || l.Title != "Middle" {
		t.Errorf("Get(middle) = %+v, %v", l, ok)
	}
	if _, ok := cat.Get("nope"); ok {
		t.Error("Get(nope) should miss")
	}
	if cat.Index("last") != 2 || cat.Index("nope") != -1 {
		t.Error("unexpected Index results")
	}
}

func TestCatalogLookupNotFound(t *testing.T) {
	_, err := threeLessons().Lookup("stale-link")
	if !errors.Is(err, loader.ErrLessonNotFound) {
		t.Errorf("Lookup err = %v, want ErrLessonNotFound", err)
	}
}

func TestNavigationBoundaries(t *testing.T) {
	cat := threeLessons()

	if _, ok := cat.Previous("first"); ok {
		t.Error("previous of the first lesson must not exist")
	}
	if _, ok := cat.Next("last"); ok {
		t.Error("next of the last lesson must not exist")
	}
	if l, ok := cat.Next("first"); !ok || l.ID != "middle" {
		t.Errorf("Next(first) = %v, %v", l.ID, ok)
	}
	if l, ok := cat.Previous("last"); !ok || l.ID != "middle" {
		t.Errorf("Previous(last) = %v, %v", l.ID, ok)
	}
	if _, ok := cat.Next("unknown"); ok {
		t.Error("Next of an unknown id must not exist")
	}
	if _, ok := cat.Previous("unknown"); ok {
		t.Error("Previous of an unknown id must not exist")
	}
}

func TestNilCatalog(t *testing.T) {
	var cat *loader.Catalog
	if cat.Len() != 0 || cat.Lessons() != nil || cat.Index("a") != -1 {
		t.Error("nil catalog should behave as empty")
	}
	if _, ok := cat.Next("a"); ok {
		t.Error("nil catalog has no lessons")
	}
}

func TestNewCatalogDropsInvalid(t *testing.T) {
	cat := loader.NewCatalog([]model.Lesson{
		{ID: "ok", Title: "OK", StarRating: 2},
		{ID: "bad", Title: "Bad", StarRating: 0},
	})
	if cat.Len() != 1 {
		t.Errorf("expected invalid lesson dropped, got %d lessons", cat.Len())
	}
}

// Walking Next from the first lesson visits every lesson once in order.
func TestNavigationWalk(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		lessons := make([]model.Lesson, n)
		for i := range lessons {
			lessons[i] = model.Lesson{ID: string(rune('a'+i%26)) + string(rune('0'+i/26)), Title: "T", StarRating: 3}
		}
		cat := loader.NewCatalog(lessons)

		id := lessons[0].ID
		for i := 1; i < n; i++ {
			next, ok := cat.Next(id)
			if !ok || next.ID != lessons[i].ID {
				t.Fatalf("step %d: Next(%s) = %s, %v", i, id, next.ID, ok)
			}
			prev, ok := cat.Previous(next.ID)
			if !ok || prev.ID != id {
				t.Fatalf("Previous(%s) = %s, want %s", next.ID, prev.ID, id)
			}
			id = next.ID
		}
		if _, ok := cat.Next(id); ok {
			t.Fatalf("Next past the end should fail")
		}
	})
}
