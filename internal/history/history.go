package history

import (
	"fmt"
	"path/filepath"
)

// Stack is a linear navigation timeline with a current position.
// It is never empty and 0 <= position < len(entries) always holds.
type Stack struct {
	entries  []string
	position int
	limit    int
}

// New creates a stack seeded with start. A limit of 0 keeps every entry.
func New(start string, limit int) *Stack {
	if limit < 0 {
		limit = 0
	}
	return &Stack{entries: []string{start}, limit: limit}
}

// Current returns the directory at the current position
func (s *Stack) Current() string {
	return s.entries[s.position]
}

// EnterDir pushes current/child, discarding any forward entries
func (s *Stack) EnterDir(child string) {
	s.push(filepath.Join(s.Current(), child))
}

// NavigateTo pushes an absolute path, discarding any forward entries
func (s *Stack) NavigateTo(path string) {
	s.push(path)
}

func (s *Stack) push(dir string) {
	s.entries = append(s.entries[:s.position+1], dir)
	s.position++

	if s.limit > 0 && len(s.entries) > s.limit {
		drop := len(s.entries) - s.limit
		s.entries = append([]string(nil), s.entries[drop:]...)
		s.position -= drop
	}
}

// CanGoBack reports whether Back may be called; false only at the oldest entry
func (s *Stack) CanGoBack() bool {
	return s.position > 0
}

// CanGoForward reports whether Forward may be called; false only at the tip
func (s *Stack) CanGoForward() bool {
	return s.position < len(s.entries)-1
}

// Back moves one entry towards the start. Callers must check CanGoBack.
func (s *Stack) Back() {
	if !s.CanGoBack() {
		panic(fmt.Sprintf("history: Back at position %d", s.position))
	}
	s.position--
}

// Forward moves one entry towards the tip. Callers must check CanGoForward.
func (s *Stack) Forward() {
	if !s.CanGoForward() {
		panic(fmt.Sprintf("history: Forward at position %d of %d", s.position, len(s.entries)))
	}
	s.position++
}

// Position returns the current index
func (s *Stack) Position() int {
	return s.position
}

// Len returns the number of entries
func (s *Stack) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the timeline
func (s *Stack) Entries() []string {
	return append([]string(nil), s.entries...)
}
