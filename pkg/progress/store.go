// Package progress owns the user's per-lesson completion and checklist
// state and keeps it persisted through a storage.KV.
//
// Persisted format (JSON, under DefaultKey):
//
//	{
//	  "botox-pricing": {"completed": true, "checklist": {"0": true, "2": false}},
//	  "membership-model": {"checklist": {"1": true}}
//	}
//
// Design notes:
//   - Entries are created lazily on the first mutation for a lesson
//   - Every mutation persists the full map immediately
//   - Missing, unreadable or corrupted data = empty map
package progress

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/academy/internal/storage"
	"github.com/vanderheijden86/academy/pkg/debug"
	"github.com/vanderheijden86/academy/pkg/model"
)

// DefaultKey is the KV key the progress map is stored under.
const DefaultKey = "academy-progress"

// Store is the single owner of the in-memory progress map. It is not safe
// for concurrent use; the UI event loop is its only writer.
type Store struct {
	kv      storage.KV
	key     string
	entries model.ProgressMap
}

// New returns an empty store bound to kv. Call Load to rehydrate it.
func New(kv storage.KV) *Store {
	return NewWithKey(kv, DefaultKey)
}

// NewWithKey is New with a custom storage key.
func NewWithKey(kv storage.KV, key string) *Store {
	if kv == nil {
		kv = storage.NewMemoryKV()
	}
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key, entries: make(model.ProgressMap)}
}

// Open builds a store on kv and loads the persisted map.
func Open(kv storage.KV) *Store {
	s := New(kv)
	s.Load()
	return s
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Load replaces the in-memory map with the persisted one. Absent or
// malformed data yields an empty map; nothing is reported to the caller.
func (s *Store) Load() {
	s.entries = decode(s.readRaw())
	debug.Log("progress: loaded %d entries from %q", len(s.entries), s.key)
}

// Reload is Load under a name that reads better at call sites reacting to
// an external change of the store.
func (s *Store) Reload() {
	s.Load()
}

func (s *Store) readRaw() string {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		debug.Log("progress: read %q failed, starting empty: %v", s.key, err)
		return ""
	}
	if !ok {
		return ""
	}
	return raw
}

func decode(raw string) model.ProgressMap {
	entries := make(model.ProgressMap)
	if raw == "" {
		return entries
	}
	var parsed map[string]*model.ProgressEntry
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		debug.Log("progress: invalid persisted state, using empty map: %v", err)
		return entries
	}
	for id, e := range parsed {
		if id == "" || e == nil {
			continue
		}
		entries[id] = *e
	}
	return entries
}

// SetCompleted upserts the completed flag for id, keeping its checklist.
// The returned error reports a failed write; the in-memory change stands
// either way.
func (s *Store) SetCompleted(id string, completed bool) error {
	e := s.entries[id]
	e.Completed = completed
	s.entries[id] = e
	return s.persist()
}

// ToggleCompleted flips the completed flag for id and returns the new value.
func (s *Store) ToggleCompleted(id string) (bool, error) {
	next := !s.entries[id].Completed
	return next, s.SetCompleted(id, next)
}

// SetChecklistItem upserts checklist[index] for id, keeping the completed
// flag and every other index. Indices are not checked against the lesson.
func (s *Store) SetChecklistItem(id string, index int, checked bool) error {
	e := s.entries[id]
	next := make(map[int]bool, len(e.Checklist)+1)
	for k, v := range e.Checklist {
		next[k] = v
	}
	next[index] = checked
	e.Checklist = next
	s.entries[id] = e
	return s.persist()
}

// ToggleChecklistItem flips checklist[index] for id and returns the new value.
func (s *Store) ToggleChecklistItem(id string, index int) (bool, error) {
	next := !s.entries[id].Checked(index)
	return next, s.SetChecklistItem(id, index, next)
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}
	return nil
}

// Entry returns the entry for id (zero value when absent).
func (s *Store) Entry(id string) model.ProgressEntry {
	return s.entries[id].Clone()
}

// IsCompleted reports whether id is marked complete.
func (s *Store) IsCompleted(id string) bool {
	return s.entries[id].Completed
}

// Len returns the number of entries, including ones for unknown lessons.
func (s *Store) Len() int {
	return len(s.entries)
}

// Snapshot returns a deep copy of the current map for read-only consumers.
func (s *Store) Snapshot() model.ProgressMap {
	return s.entries.Clone()
}
