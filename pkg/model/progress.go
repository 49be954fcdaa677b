package model

// ProgressEntry is the mutable per-lesson record of completion and
// checklist state. A missing entry is equivalent to the zero value.
type ProgressEntry struct {
	Completed bool         `json:"completed"`
	Checklist map[int]bool `json:"checklist,omitempty"`
}

// Checked reports whether checklist item i is done. Unset indices are false.
func (e ProgressEntry) Checked(i int) bool {
	return e.Checklist[i]
}

// CheckedCount counts checked items among the first n checklist positions.
// Indices outside [0, n) are ignored.
func (e ProgressEntry) CheckedCount(n int) int {
	count := 0
	for i, ok := range e.Checklist {
		if ok && i >= 0 && i < n {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the entry.
func (e ProgressEntry) Clone() ProgressEntry {
	out := ProgressEntry{Completed: e.Completed}
	if e.Checklist != nil {
		out.Checklist = make(map[int]bool, len(e.Checklist))
		for k, v := range e.Checklist {
			out.Checklist[k] = v
		}
	}
	return out
}

// ProgressMap maps lesson id to its progress entry.
type ProgressMap map[string]ProgressEntry

// Entry returns the entry for id, or the zero entry when none exists.
func (p ProgressMap) Entry(id string) ProgressEntry {
	return p[id]
}

// Clone returns a deep copy of the map.
func (p ProgressMap) Clone() ProgressMap {
	out := make(ProgressMap, len(p))
	for id, e := range p {
		out[id] = e.Clone()
	}
	return out
}
