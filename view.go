package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/LFroesch/trek/internal/browser"
	"github.com/LFroesch/trek/internal/registry"
	"github.com/LFroesch/trek/internal/utils"
)

const (
	sizeColumn     = 10
	modifiedColumn = 12
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("252"))
	navEnabledStyle  = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("99")).Bold(true)
	navDisabledStyle = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("240"))
	columnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("105")).Bold(true)
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	selectedStyle    = lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("230"))
	cursorStyle      = lipgloss.NewStyle().Background(lipgloss.Color("237"))
)

func (m *model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderSearchBox(),
		m.renderColumns(),
		m.renderFileList(),
		m.renderStatusBar(),
		m.help.View(m.keys),
	)
}

// renderHeader shows back/forward affordances, dimmed when unavailable, and the current directory
func (m *model) renderHeader() string {
	back := navDisabledStyle.Render("◀")
	if m.browser.CanGoBack() {
		back = navEnabledStyle.Render("◀")
	}
	forward := navDisabledStyle.Render("▶")
	if m.browser.CanGoForward() {
		forward = navEnabledStyle.Render("▶")
	}

	title := " " + back + barStyle.Render(" ") + forward + barStyle.Render("  "+m.browser.CurrentDir())
	if m.browser.Loading() {
		title += barStyle.Render(" ") + m.spinner.View()
	}
	return barStyle.Width(m.width).Render(title)
}

func (m *model) renderSearchBox() string {
	box := m.searchInput.View()
	if m.browser.Mode() == browser.Searching {
		box += dimStyle.Render(fmt.Sprintf("  %d results for %q in %s",
			len(m.browser.Records()), m.browser.SearchTerm(), m.browser.Listing().Dir))
	}
	return lipgloss.NewStyle().Width(m.width).MaxHeight(1).Render(box)
}

func (m *model) nameWidth() int {
	w := m.width - sizeColumn - modifiedColumn - 6
	if w < 10 {
		w = 10
	}
	return w
}

func (m *model) renderColumns() string {
	name := utils.PadRight("   Name", 7, m.nameWidth()+4)
	size := fmt.Sprintf("%*s", sizeColumn, "Size")
	modified := fmt.Sprintf("  %-*s", modifiedColumn, "Modified")
	return columnStyle.Render(name + size + modified)
}

// renderFileList renders the visible window of the displayed list
func (m *model) renderFileList() string {
	rows := m.visibleRows()
	records := m.browser.Records()

	var lines []string
	if len(records) == 0 {
		lines = append(lines, dimStyle.Render("  "+m.emptyText()))
	}
	for i := m.scrollOffset; i < len(records) && i < m.scrollOffset+rows; i++ {
		lines = append(lines, m.renderRow(records[i], i))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *model) emptyText() string {
	switch {
	case m.browser.Loading():
		return "Loading..."
	case m.browser.LastErr() != nil:
		return fmt.Sprintf("Cannot show this list: %v", m.browser.LastErr())
	case m.browser.Mode() == browser.Searching:
		return "No results"
	default:
		return "Empty folder"
	}
}

func (m *model) renderRow(rec *registry.Record, index int) string {
	snap := rec.Snapshot
	width := m.nameWidth()

	name := snap.Name
	if m.browser.Mode() == browser.Searching {
		// Show where the result lives relative to the search root
		if rel, err := filepath.Rel(m.browser.Listing().Dir, filepath.Dir(snap.FullPath)); err == nil && rel != "." {
			name += "  " + rel
		}
	}

	display := utils.Truncate(name, width)
	visible := runewidth.StringWidth(display)
	if m.browser.Mode() == browser.Searching && !rec.Selected && strings.HasPrefix(display, snap.Name) {
		matches := utils.MatchPositions(m.browser.SearchTerm(), snap.Name)
		display = utils.HighlightMatches(snap.Name, matches) + dimStyle.Render(display[len(snap.Name):])
	}
	display = utils.PadRight(display, visible, width)

	size := utils.SizeColored(snap)
	sizePad := strings.Repeat(" ", max(sizeColumn-lipgloss.Width(size), 0))
	modified := fmt.Sprintf("  %-*s", modifiedColumn, snap.ModifiedText(m.now()))

	line := fmt.Sprintf("%s %s %s%s%s", utils.Icon(snap), display, sizePad, size, modified)

	switch {
	case rec.Selected:
		return selectedStyle.Render(line)
	case index == m.cursor:
		return cursorStyle.Render(line)
	default:
		return line
	}
}

func (m *model) renderStatusBar() string {
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("240")).
		Padding(0, 1).
		Width(m.width)

	records := m.browser.Records()
	var statusText string
	if len(records) > 0 {
		statusText = fmt.Sprintf("%d/%d", m.cursor+1, len(records))
	}
	if n := len(m.browser.Selection().Selected()); n > 0 {
		statusText += fmt.Sprintf(" | %d selected", n)
	}
	if m.browser.Loading() {
		if m.browser.Mode() == browser.Searching || m.searchInput.Value() != "" {
			statusText += " | Searching..."
		} else {
			statusText += " | Loading..."
		}
	}
	if m.statusMsg != "" {
		statusText += " | " + m.statusMsg
	}

	rightSide := "f1 for help"
	padding := m.width - 2 - lipgloss.Width(statusText) - lipgloss.Width(rightSide)
	if padding < 1 {
		padding = 1
	}
	return statusStyle.Render(statusText + strings.Repeat(" ", padding) + rightSide)
}
