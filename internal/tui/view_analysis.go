package tui

import (
	"github.com/newhook/glass/internal/app"
)

const streamCursor = "  ▊"

func analysisHints(s *app.State) []keyHint {
	back := "back to detail"
	if s.IsStreamingAnalysis {
		back = "back"
	}
	return []keyHint{
		{"q/Esc", back},
		{"↑↓/C-d/u", "scroll"},
	}
}

func renderAnalysis(s *app.State, pane *scrollPanel, spin string) string {
	width, height := s.TerminalWidth, s.TerminalHeight
	bodyHeight := max(height-headerHeight-2, minPanelHeight)

	title := "Analysis"
	if s.CurrentIssue != nil && s.CurrentIssue.Source.Title != "" {
		title = s.CurrentIssue.Source.Title
	}
	header := boldStyle.Render(title)
	if s.IsStreamingAnalysis {
		header += spinnerStyle.Render(" " + spin + " analyzing")
	} else {
		header += successStyle.Render(" ✓ complete")
	}

	return joinRows(
		renderPanel([]string{header}, width, headerHeight),
		pane.render(activityRows(s), width, bodyHeight, analysisOffset(s)),
		renderError(s),
		renderHints(analysisHints(s), width),
	)
}

// activityRows renders the activity log, with a cursor while streaming.
func activityRows(s *app.State) []string {
	rows := make([]string, 0, len(s.AnalysisLines)+1)
	for _, line := range s.AnalysisLines {
		style := activityStyle(line.Style)
		rows = append(rows, style.Render(line.Icon+" ")+style.Render(line.Text))
	}
	if s.IsStreamingAnalysis {
		rows = append(rows, spinnerStyle.Render(streamCursor))
	}
	return rows
}

// analysisOffset follows the end of the log until the user scrolls.
func analysisOffset(s *app.State) int {
	if s.AnalysisScroll > 0 {
		return s.AnalysisScroll
	}
	return followTail
}
