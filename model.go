package main

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LFroesch/trek/internal/browser"
	"github.com/LFroesch/trek/internal/config"
)

// searchDebounceMsg fires once typing in the search box pauses
type searchDebounceMsg struct{ query string }

// Terminal dimension constants
const (
	minTerminalWidth  = 60
	minTerminalHeight = 12
	listTop           = 3 // Header, search box and column titles sit above the rows
)

const (
	searchDebounceDelay = 300 * time.Millisecond
	statusDuration      = 3 * time.Second
)

type model struct {
	browser *browser.Controller
	keys    keyMap
	help    help.Model

	searchInput textinput.Model
	spinner     spinner.Model

	cursor       int
	scrollOffset int
	width        int
	height       int

	statusMsg    string
	statusExpiry time.Time

	lastClickTime        time.Time // Time of last mouse click
	lastClickIndex       int       // Row of last mouse click
	doubleClickThreshold time.Duration

	now       func() time.Time
	writeClip func(string) error
}

func newModel(cfg *config.Config, ctrl *browser.Controller) *model {
	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 256
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	return &model{
		browser:              ctrl,
		keys:                 defaultKeyMap(),
		help:                 help.New(),
		searchInput:          ti,
		spinner:              sp,
		width:                minTerminalWidth,
		height:               minTerminalHeight,
		lastClickIndex:       -1,
		doubleClickThreshold: time.Duration(cfg.DoubleClickMS) * time.Millisecond,
		now:                  time.Now,
		writeClip:            clipboard.WriteAll,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("trek"),
		m.browser.LoadCurrentDirectory(),
		m.spinner.Tick,
	)
}

// visibleRows returns how many list rows fit between the column titles and the footer
func (m *model) visibleRows() int {
	footer := 1 + lipgloss.Height(m.help.View(m.keys))
	rows := m.height - listTop - footer
	if rows < 1 {
		rows = 1
	}
	return rows
}

// clampCursor keeps the cursor on a record and inside the visible window
func (m *model) clampCursor() {
	n := len(m.browser.Records())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	rows := m.visibleRows()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+rows {
		m.scrollOffset = m.cursor - rows + 1
	}
	maxScroll := n - rows
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scrollOffset > maxScroll {
		m.scrollOffset = maxScroll
	}
}

// rowAt maps a terminal row to a record index, or -1
func (m *model) rowAt(y int) int {
	i := y - listTop
	if i < 0 || i >= m.visibleRows() {
		return -1
	}
	idx := m.scrollOffset + i
	if idx >= len(m.browser.Records()) {
		return -1
	}
	return idx
}

// searchDebounce returns a command that waits before triggering search
func searchDebounce(query string) tea.Cmd {
	return tea.Tick(searchDebounceDelay, func(t time.Time) tea.Msg {
		return searchDebounceMsg{query: query}
	})
}
