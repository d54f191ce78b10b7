package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/trek/internal/browser"
	"github.com/LFroesch/trek/internal/entry"
	"github.com/LFroesch/trek/internal/logger"
	"github.com/LFroesch/trek/internal/selection"
)

func (m *model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusExpiry = m.now().Add(statusDuration)
}

func (m *model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *model) click(index int, mods selection.Modifiers) {
	if len(m.browser.Records()) == 0 {
		return
	}
	if err := m.browser.Click(index, mods); err != nil {
		logger.Warn("Click ignored: %v", err)
	}
}

// activate opens the record at index. Entering a folder from search results
// leaves search mode, so the search box is cleared with it.
func (m *model) activate(index int) tea.Cmd {
	records := m.browser.Records()
	if index < 0 || index >= len(records) {
		return nil
	}
	rec := records[index]
	if rec.Snapshot.Kind == entry.Folder && m.browser.Mode() == browser.Searching {
		m.searchInput.SetValue("")
		m.searchInput.Blur()
	}
	return m.browser.Activate(rec)
}

// copyPaths puts the selection's absolute paths on the clipboard, one per line
func (m *model) copyPaths() {
	paths := m.browser.SelectedPaths()
	if len(paths) == 0 {
		m.setStatus("Nothing selected")
		return
	}

	if err := m.writeClip(strings.Join(paths, "\n")); err != nil {
		m.setStatus(fmt.Sprintf("Failed to copy: %v", err))
		return
	}
	if len(paths) == 1 {
		m.setStatus("Copied: " + paths[0])
	} else {
		m.setStatus(fmt.Sprintf("Copied %d paths", len(paths)))
	}
}
