package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/trek/internal/browser"
	"github.com/LFroesch/trek/internal/selection"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Clear expired status messages
	if m.statusMsg != "" && m.now().After(m.statusExpiry) {
		m.statusMsg = ""
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, minTerminalWidth)
		m.height = max(msg.Height, minTerminalHeight)
		m.help.Width = m.width
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchDebounceMsg:
		// Only the latest keystroke's timer triggers a search
		if msg.query == m.searchInput.Value() {
			return m, m.browser.Search(msg.query)
		}
		return m, nil

	case browser.ListedMsg:
		cmd := m.browser.Update(msg)
		if m.browser.Listing().Gen != msg.Gen {
			return m, cmd
		}
		m.cursor, m.scrollOffset = 0, 0
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("cannot read %s: %v", filepath.Base(msg.Dir), msg.Err))
		}
		return m, cmd

	case browser.SearchedMsg:
		cmd := m.browser.Update(msg)
		if m.browser.Listing().Gen != msg.Gen {
			return m, cmd
		}
		m.cursor, m.scrollOffset = 0, 0
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("search error: %v", msg.Err))
		} else {
			m.setStatus(fmt.Sprintf("%d results for %q", len(msg.Entries), msg.Term))
		}
		return m, cmd

	case browser.OpenedMsg:
		cmd := m.browser.Update(msg)
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("open failed: %v", msg.Err))
		} else {
			m.setStatus("opened " + filepath.Base(msg.Path))
		}
		return m, cmd

	case browser.DeletedMsg:
		cmd := m.browser.Update(msg)
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("could not trash %d of %d: %v", len(msg.Failed), len(msg.Paths), msg.Err))
		} else {
			m.setStatus(fmt.Sprintf("moved %d to trash", len(msg.Paths)))
		}
		m.clampCursor()
		return m, cmd

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Reserved):
		return nil
	}

	if m.searchInput.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.visibleRows())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.visibleRows())
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-len(m.browser.Records()))
	case key.Matches(msg, m.keys.End):
		m.moveCursor(len(m.browser.Records()))

	case key.Matches(msg, m.keys.ExtendUp):
		m.moveCursor(-1)
		m.click(m.cursor, selection.Modifiers{Shift: true})
	case key.Matches(msg, m.keys.ExtendDown):
		m.moveCursor(1)
		m.click(m.cursor, selection.Modifiers{Shift: true})
	case key.Matches(msg, m.keys.Select):
		m.click(m.cursor, selection.Modifiers{})
	case key.Matches(msg, m.keys.Toggle):
		m.click(m.cursor, selection.Modifiers{Ctrl: true})

	case key.Matches(msg, m.keys.Open):
		return m.activate(m.cursor)
	case key.Matches(msg, m.keys.Delete):
		return m.browser.DeleteSelected()
	case key.Matches(msg, m.keys.Escape):
		if m.browser.Mode() == browser.Searching || m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			return m.browser.ExitSearch()
		}
		m.browser.ClearSelection()

	case key.Matches(msg, m.keys.Back):
		m.searchInput.SetValue("")
		return m.browser.Back()
	case key.Matches(msg, m.keys.Forward):
		m.searchInput.SetValue("")
		return m.browser.Forward()
	case key.Matches(msg, m.keys.Reload):
		if m.browser.Mode() == browser.Searching {
			return m.browser.Search(m.browser.SearchTerm())
		}
		return m.browser.LoadCurrentDirectory()
	case key.Matches(msg, m.keys.CopyPaths):
		m.copyPaths()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.clampCursor()

	case msg.Type == tea.KeyRunes && !msg.Alt:
		// Typing anywhere starts a search
		m.searchInput.Focus()
		return m.handleSearchKey(msg)
	}
	return nil
}

func (m *model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		return m.browser.ExitSearch()
	case tea.KeyEnter:
		m.searchInput.Blur()
		return m.browser.Search(m.searchInput.Value())
	case tea.KeyTab:
		m.searchInput.Blur()
		return nil
	case tea.KeyUp, tea.KeyDown:
		m.searchInput.Blur()
		return m.handleKey(msg)
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	value := m.searchInput.Value()
	if value == before {
		return cmd
	}
	if strings.TrimSpace(value) == "" {
		return tea.Batch(cmd, m.browser.ExitSearch())
	}
	return tea.Batch(cmd, searchDebounce(value))
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
	case tea.MouseButtonLeft:
		idx := m.rowAt(msg.Y)
		if idx < 0 {
			return nil
		}
		m.searchInput.Blur()
		mods := selection.Modifiers{Ctrl: msg.Ctrl, Shift: msg.Shift}

		now := m.now()
		isDoubleClick := !mods.Ctrl && !mods.Shift &&
			!m.lastClickTime.IsZero() &&
			now.Sub(m.lastClickTime) <= m.doubleClickThreshold &&
			m.lastClickIndex == idx

		if isDoubleClick {
			m.lastClickTime = time.Time{} // Reset to prevent triple-click
			return m.activate(idx)
		}

		m.lastClickTime = now
		m.lastClickIndex = idx
		m.cursor = idx
		m.clampCursor()
		m.click(idx, mods)
	}
	return nil
}
