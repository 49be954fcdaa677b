package progress

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/academy/internal/storage"
)

// failingKV accepts reads and rejects every write.
type failingKV struct {
	*storage.MemoryKV
}

var errDiskFull = errors.New("disk full")

func (f *failingKV) Set(string, string) error { return errDiskFull }

func TestLoad_EmptyStore(t *testing.T) {
	s := Open(storage.NewMemoryKV())
	if s.Len() != 0 {
		t.Fatalf("expected empty map, got %d entries", s.Len())
	}
	if s.IsCompleted("anything") {
		t.Error("absent entry must read as not completed")
	}
}

func TestLoad_MalformedStateFallsBackToEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":          "{oops",
		"array":             `[1,2,3]`,
		"scalar entry":      `{"a": 5}`,
		"bad field type":    `{"a": {"completed": "yes"}}`,
		"bad checklist key": `{"a": {"checklist": {"x": true}}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			kv := storage.NewMemoryKV()
			_ = kv.Set(DefaultKey, raw)
			s := Open(kv)
			if s.Len() != 0 {
				t.Errorf("expected empty map for %q, got %v", raw, s.Snapshot())
			}
		})
	}
}

func TestLoad_NullEntriesSkipped(t *testing.T) {
	kv := storage.NewMemoryKV()
	_ = kv.Set(DefaultKey, `{"a": null, "b": {"completed": true}}`)
	s := Open(kv)
	if s.Len() != 1 || !s.IsCompleted("b") {
		t.Errorf("unexpected entries %v", s.Snapshot())
	}
}

func TestSetCompleted_PersistsAndRehydrates(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := Open(kv)

	if err := s.SetCompleted("a", true); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}
	if err := s.SetChecklistItem("a", 1, true); err != nil {
		t.Fatalf("SetChecklistItem: %v", err)
	}

	raw, ok, _ := kv.Get(DefaultKey)
	if !ok {
		t.Fatal("expected progress to be persisted")
	}
	if !strings.Contains(raw, `"completed":true`) || !strings.Contains(raw, `"checklist":{"1":true}`) {
		t.Errorf("unexpected serialized form %s", raw)
	}

	again := Open(kv)
	e := again.Entry("a")
	if !e.Completed || !e.Checked(1) || e.Checked(0) {
		t.Errorf("rehydrated entry = %+v", e)
	}
}

func TestSetChecklistItem_PreservesOtherIndices(t *testing.T) {
	s := Open(storage.NewMemoryKV())
	_ = s.SetChecklistItem("a", 0, true)
	_ = s.SetChecklistItem("a", 2, true)
	_ = s.SetChecklistItem("a", 0, false)

	e := s.Entry("a")
	if e.Checked(0) || !e.Checked(2) {
		t.Errorf("entry = %+v, want index 0 unchecked and 2 checked", e)
	}
	if e.Completed {
		t.Error("checklist change must not mark lesson complete")
	}
}

func TestToggle(t *testing.T) {
	s := Open(storage.NewMemoryKV())
	if v, _ := s.ToggleCompleted("a"); !v {
		t.Error("first toggle should complete")
	}
	if v, _ := s.ToggleCompleted("a"); v {
		t.Error("second toggle should un-complete")
	}
	if v, _ := s.ToggleChecklistItem("a", 3); !v {
		t.Error("first checklist toggle should check")
	}
	if !s.Entry("a").Checked(3) {
		t.Error("index 3 should be checked")
	}
}

func TestWriteFailureKeepsMemoryAuthoritative(t *testing.T) {
	kv := &failingKV{MemoryKV: storage.NewMemoryKV()}
	s := Open(kv)

	err := s.SetCompleted("a", true)
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("SetCompleted error = %v, want wrapped errDiskFull", err)
	}
	if !s.IsCompleted("a") {
		t.Error("in-memory state must survive a failed write")
	}
}

func TestEntryReturnsCopy(t *testing.T) {
	s := Open(storage.NewMemoryKV())
	_ = s.SetChecklistItem("a", 0, true)
	e := s.Entry("a")
	e.Checklist[0] = false
	if !s.Entry("a").Checked(0) {
		t.Error("mutating returned entry leaked into the store")
	}
}

func TestFileBackedStoreSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	kv, err := storage.NewFileKV(path)
	if err != nil {
		t.Fatal(err)
	}
	s := Open(kv)
	_ = s.SetCompleted("intro", true)

	kv2, _ := storage.NewFileKV(path)
	if !Open(kv2).IsCompleted("intro") {
		t.Error("expected completion to survive reopening the file store")
	}
}

func TestReloadPicksUpExternalClear(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := Open(kv)
	_ = s.SetCompleted("a", true)

	_ = kv.Set(DefaultKey, "{}")
	s.Reload()
	if s.IsCompleted("a") {
		t.Error("expected reload to observe the cleared store")
	}
}

// Setting a checklist item never touches completed, and vice versa.
func TestFieldIndependence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := Open(storage.NewMemoryKV())
		id := rapid.SampledFrom([]string{"a", "b", "c"}).Draw(t, "id")

		ops := rapid.IntRange(1, 30).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			before := s.Entry(id)
			if rapid.Bool().Draw(t, "completedOp") {
				v := rapid.Bool().Draw(t, "completed")
				_ = s.SetCompleted(id, v)
				after := s.Entry(id)
				if after.Completed != v {
					t.Fatalf("completed = %v, want %v", after.Completed, v)
				}
				if len(after.Checklist) != len(before.Checklist) {
					t.Fatalf("checklist changed by SetCompleted: %v -> %v", before.Checklist, after.Checklist)
				}
				for k, want := range before.Checklist {
					if after.Checklist[k] != want {
						t.Fatalf("checklist[%d] changed by SetCompleted", k)
					}
				}
			} else {
				idx := rapid.IntRange(0, 6).Draw(t, "index")
				v := rapid.Bool().Draw(t, "checked")
				_ = s.SetChecklistItem(id, idx, v)
				after := s.Entry(id)
				if after.Completed != before.Completed {
					t.Fatalf("completed changed by SetChecklistItem")
				}
				if after.Checked(idx) != v {
					t.Fatalf("checklist[%d] = %v, want %v", idx, after.Checked(idx), v)
				}
				for k, want := range before.Checklist {
					if k != idx && after.Checklist[k] != want {
						t.Fatalf("checklist[%d] changed while setting %d", k, idx)
					}
				}
			}
		}
	})
}
