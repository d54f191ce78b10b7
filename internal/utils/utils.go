package utils

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/LFroesch/trek/internal/entry"
)

// Icon returns an emoji for the entry kind, and for files one based on extension
func Icon(s entry.Snapshot) string {
	switch s.Kind {
	case entry.Folder:
		return "📁"
	case entry.SymLink:
		return "🔗"
	}

	switch strings.ToLower(filepath.Ext(s.Name)) {
	case ".go":
		return "🐹"
	case ".js", ".ts", ".jsx", ".tsx":
		return "📜"
	case ".py":
		return "🐍"
	case ".rs":
		return "🦀"
	case ".html", ".htm":
		return "🌐"
	case ".css", ".scss", ".sass":
		return "🎨"
	case ".json", ".yaml", ".yml", ".toml":
		return "📋"
	case ".md", ".markdown":
		return "📝"
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico":
		return "🖼️"
	case ".mp4", ".avi", ".mov", ".mkv":
		return "🎬"
	case ".mp3", ".wav", ".flac", ".ogg":
		return "🎵"
	case ".zip", ".tar", ".gz", ".rar", ".7z":
		return "📦"
	case ".pdf":
		return "📕"
	case ".sh", ".bash", ".zsh":
		return "🖥️"
	default:
		return "📄"
	}
}

// SizeColored renders the size column, colored by magnitude for files
func SizeColored(s entry.Snapshot) string {
	const (
		KB    = 1000
		MB    = 1000 * KB
		MB100 = 100 * MB
	)

	var style lipgloss.Style
	switch {
	case s.Kind == entry.Folder:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	case s.Size < KB:
		// tiny files
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	case s.Size < MB:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	case s.Size < MB100:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	default:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	}
	return style.Render(s.SizeText())
}

// MatchPositions returns the byte offsets of the runes in name that match query.
// The first case-insensitive substring wins; names that only match in a
// different Unicode form fall back to fuzzy positions.
func MatchPositions(query, name string) []int {
	if query == "" {
		return nil
	}
	if span := substringSpan(query, name); span != nil {
		return span
	}
	matches := fuzzy.Find(query, []string{name})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}

func substringSpan(query, name string) []int {
	q := []rune(query)
	for start := range name {
		var offsets []int
		i, k := start, 0
		for k < len(q) && i < len(name) {
			r, size := utf8.DecodeRuneInString(name[i:])
			if !strings.EqualFold(string(r), string(q[k])) {
				break
			}
			offsets = append(offsets, i)
			i += size
			k++
		}
		if k == len(q) {
			return offsets
		}
	}
	return nil
}

// HighlightMatches highlights the characters starting at the given byte offsets
func HighlightMatches(text string, matches []int) string {
	if len(matches) == 0 {
		return text
	}

	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("226")).
		Bold(true)

	matchMap := make(map[int]bool, len(matches))
	for _, idx := range matches {
		matchMap[idx] = true
	}

	var result strings.Builder
	for i, r := range text {
		if matchMap[i] {
			result.WriteString(highlightStyle.Render(string(r)))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// Truncate shortens s to at most width terminal cells, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight fills s with spaces up to width cells. visible is the cell width of
// s without styling.
func PadRight(s string, visible, width int) string {
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
