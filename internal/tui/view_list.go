package tui

import (
	"fmt"

	zone "github.com/lrstanley/bubblezone"
	"github.com/newhook/glass/internal/api"
	"github.com/newhook/glass/internal/app"
)

// listFixedWidth is the width of everything on a list row except the title:
// marker, icon, label, event count, date and the gaps between them.
const listFixedWidth = 4 + 2 + 9 + 2 + 6 + 2 + 10 + 2

const minTitleWidth = 20

var listHints = []keyHint{
	{"↑↓/jk/C-d/u", "navigate"},
	{"Enter", "open"},
	{"a", "analyze"},
	{"r", "refresh"},
	{"q", "quit"},
}

func rowZoneID(i int) string {
	return fmt.Sprintf("issue-row-%d", i)
}

func renderList(s *app.State, pane *scrollPanel, spin string) string {
	width, height := s.TerminalWidth, s.TerminalHeight

	title := titleStyle.Render(" Glass ")
	if s.IsRefreshing || s.IsLoading() {
		title += spinnerStyle.Render(spin)
	}
	if n := len(s.Issues); n > 0 {
		title += dimStyle.Render(fmt.Sprintf(" %d issues", n))
	}

	panelHeight := max(height-3, minPanelHeight)
	innerW, innerH := panelInner(width, panelHeight)
	titleWidth := max(innerW-listFixedWidth, minTitleWidth)

	var rows []string
	if len(s.Issues) == 0 {
		if s.IsRefreshing {
			rows = append(rows, dimStyle.Render("Loading issues..."))
		} else {
			rows = append(rows, dimStyle.Render("No issues"))
		}
	}

	for i, issue := range s.Issues {
		row := listRow(issue, titleWidth, i == s.SelectedIndex)
		rows = append(rows, zone.Mark(rowZoneID(i), app.Truncate(row, innerW)))
	}
	// Keep the selection on the last visible row once it passes the fold.
	offset := max(s.SelectedIndex-innerH+1, 0)

	return joinRows(
		title,
		pane.render(rows, width, panelHeight, offset),
		renderError(s),
		renderHints(listHints, width),
	)
}

func listRow(issue api.Issue, titleWidth int, selected bool) string {
	badge := badgeFor(issue.Status)
	marker := "  "
	if selected {
		marker = "▶ "
	}

	title := padRight(app.Truncate(issue.Title, titleWidth), titleWidth)
	if selected {
		title = selectedStyle.Render(title)
	}

	return marker +
		badge.style().Render(badge.Icon+" "+padRight(badge.Label, 9)) +
		title +
		dimStyle.Render("  "+padLeft(fmt.Sprint(issue.EventCount), 6)) +
		dimStyle.Render("  "+formatDate(issue.LastSeen))
}
