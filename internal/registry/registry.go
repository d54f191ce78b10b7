package registry

import (
	"github.com/google/uuid"

	"github.com/LFroesch/trek/internal/entry"
)

// Record wraps a snapshot with a stable identity and UI flags.
// The ID is random, never derived from content, and survives snapshot replacement.
type Record struct {
	ID       uuid.UUID
	Snapshot entry.Snapshot
	Selected bool
}

// Replace swaps the snapshot in place without touching identity or flags
func (r *Record) Replace(s entry.Snapshot) {
	r.Snapshot = s
}

// Wrap builds a fresh list generation, one record per snapshot
func Wrap(snaps []entry.Snapshot) []*Record {
	records := make([]*Record, len(snaps))
	for i, s := range snaps {
		records[i] = &Record{ID: uuid.New(), Snapshot: s}
	}
	return records
}

// FindByID returns the index of the record with id, or -1
func FindByID(list []*Record, id uuid.UUID) int {
	for i, r := range list {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Remove deletes the record with id from list and returns the shortened list,
// the removed record and its former index. The index is -1 when id is absent.
func Remove(list []*Record, id uuid.UUID) ([]*Record, *Record, int) {
	idx := FindByID(list, id)
	if idx < 0 {
		return list, nil, -1
	}
	removed := list[idx]
	return append(list[:idx], list[idx+1:]...), removed, idx
}

// Insert places r at idx, appending when idx is past the end
func Insert(list []*Record, idx int, r *Record) []*Record {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(list) {
		return append(list, r)
	}
	list = append(list, nil)
	copy(list[idx+1:], list[idx:])
	list[idx] = r
	return list
}

// Unique drops repeated references to the same id, keeping first occurrences
func Unique(list []*Record) []*Record {
	seen := make(map[uuid.UUID]bool, len(list))
	out := make([]*Record, 0, len(list))
	for _, r := range list {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}
