package selection

import (
	"errors"
	"fmt"

	"github.com/LFroesch/trek/internal/registry"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// Modifiers is the key state delivered with a click
type Modifiers struct {
	Ctrl  bool
	Shift bool
}

// Engine tracks the multi-selection of one displayed list.
//
// The pivot anchors shift ranges and only moves on non-shift clicks, so repeated
// shift-clicks resize a single range. The click log may hold the same record
// more than once; Selected de-duplicates it.
type Engine struct {
	log      []*registry.Record
	pivot    int
	hasPivot bool
	last     int
	hasLast  bool
}

// Click applies a click on list[index] under mods
func (e *Engine) Click(list []*registry.Record, index int, mods Modifiers) error {
	if index < 0 || index >= len(list) {
		return fmt.Errorf("click at %d of %d: %w", index, len(list), ErrIndexOutOfRange)
	}
	rec := list[index]

	switch {
	case mods.Shift && e.hasPivot:
		lo, hi := e.pivot, index
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi >= len(list) {
			hi = len(list) - 1
		}
		if !mods.Ctrl {
			e.clearFlags()
			e.log = nil
		}
		for _, r := range list[lo : hi+1] {
			r.Selected = true
			e.log = append(e.log, r)
		}
	case mods.Ctrl && !mods.Shift:
		e.log = append(e.log, rec)
		rec.Selected = !rec.Selected
	default:
		e.normalClick(rec)
	}

	if !mods.Shift {
		e.pivot, e.hasPivot = index, true
	}
	e.last, e.hasLast = index, true
	return nil
}

// normalClick selects exactly rec, except that clicking the sole selected
// record deselects it
func (e *Engine) normalClick(rec *registry.Record) {
	initial := rec.Selected
	previous := len(e.log)

	e.clearFlags()
	e.log = []*registry.Record{rec}

	if previous > 1 {
		rec.Selected = true
	} else {
		rec.Selected = !initial
	}
}

func (e *Engine) clearFlags() {
	for _, r := range e.log {
		r.Selected = false
	}
}

// Clear deselects everything and forgets pivot and last index
func (e *Engine) Clear() {
	e.clearFlags()
	e.Reset()
}

// Reset forgets all bookkeeping without touching record flags.
// Used when the list the engine was tracking has been discarded.
func (e *Engine) Reset() {
	e.log = nil
	e.hasPivot, e.pivot = false, 0
	e.hasLast, e.last = false, 0
}

// Selected returns the currently selected records in selection order, one per id
func (e *Engine) Selected() []*registry.Record {
	out := make([]*registry.Record, 0, len(e.log))
	for _, r := range registry.Unique(e.log) {
		if r.Selected {
			out = append(out, r)
		}
	}
	return out
}

// Log returns the raw click log including repeats and since-deselected records
func (e *Engine) Log() []*registry.Record {
	return append([]*registry.Record(nil), e.log...)
}

// Pivot returns the shift-range anchor, if any
func (e *Engine) Pivot() (int, bool) {
	return e.pivot, e.hasPivot
}

// LastIndex returns the index of the most recent click, if any
func (e *Engine) LastIndex() (int, bool) {
	return e.last, e.hasLast
}
