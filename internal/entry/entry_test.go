package entry

import (
	"errors"
	"testing"
	"time"
)

func TestSizeText(t *testing.T) {
	mod := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		snap     Snapshot
		expected string
	}{
		{"empty folder", NewFolder("docs", 0, mod), "Empty"},
		{"single item", NewFolder("docs", 1, mod), "1 item"},
		{"many items", NewFolder("docs", 3, mod), "3 items"},
		{"small file", NewFile("a.txt", 120, mod), "120 B"},
		{"decimal units", NewFile("big.iso", 2000000, mod), "2.0 MB"},
		{"symlink uses size", NewSymLink("link", 1000, mod), "1.0 kB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.SizeText(); got != tt.expected {
				t.Errorf("SizeText() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestModifiedText(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		modified time.Time
		expected string
	}{
		{"today", time.Date(2024, 6, 15, 9, 5, 0, 0, time.UTC), "09:05"},
		{"this year", time.Date(2024, 2, 3, 9, 5, 0, 0, time.UTC), "03 Feb"},
		{"older", time.Date(2021, 11, 20, 9, 5, 0, 0, time.UTC), "20 Nov 2021"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFile("f", 1, tt.modified)
			if got := s.ModifiedText(now); got != tt.expected {
				t.Errorf("ModifiedText() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	mod := time.Now()
	count := uint64(2)

	tests := []struct {
		name    string
		snap    Snapshot
		wantErr error
	}{
		{"folder with count", NewFolder("d", 2, mod), nil},
		{"folder without count", Snapshot{Name: "d", Kind: Folder}, ErrItemCount},
		{"file with count", Snapshot{Name: "f", Kind: File, ItemCount: &count}, ErrItemCount},
		{"search result", NewFile("f", 1, mod).WithFullPath("/home/u/f"), nil},
		{"relative full path", NewFile("f", 1, mod).WithFullPath("u/f"), ErrRelative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsSearchResult(t *testing.T) {
	s := NewFile("a.txt", 1, time.Now())
	if s.IsSearchResult() {
		t.Error("plain listing entry reported as search result")
	}
	if !s.WithFullPath("/tmp/a.txt").IsSearchResult() {
		t.Error("entry with full path not reported as search result")
	}
	if s.FullPath != "" {
		t.Error("WithFullPath mutated the receiver")
	}
}
