package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"
	"github.com/newhook/glass/internal/app"
)

// minPanelHeight keeps a bordered panel drawable on tiny terminals.
const minPanelHeight = 3

type keyHint struct {
	key  string
	desc string
}

// renderHints draws the one-line key hint bar.
func renderHints(hints []keyHint, width int) string {
	var b strings.Builder
	for _, h := range hints {
		b.WriteString(hotkeyStyle.Render("[" + h.key + "]"))
		b.WriteString(" " + h.desc + " ")
	}
	return actionBarStyle.Width(width).Render(app.Truncate(b.String(), width))
}

// renderError draws the last error, or an empty line.
func renderError(s *app.State) string {
	if s.Error == "" {
		return ""
	}
	return errorStyle.Render(app.Truncate(" "+s.Error, s.TerminalWidth))
}

// panelInner returns the content area of a panel of the given outer size.
func panelInner(width, height int) (int, int) {
	return max(width-4, 1), max(height-2, 1)
}

// renderPanel draws fixed lines in a bordered box of exactly width x height
// cells. Lines beyond the box are dropped and long lines are truncated.
func renderPanel(lines []string, width, height int) string {
	innerW, innerH := panelInner(width, height)
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	clipped := make([]string, len(lines))
	for i, line := range lines {
		clipped[i] = app.Truncate(line, innerW)
	}
	return panelStyle.
		Width(max(width-2, 1)).
		Height(innerH).
		Render(strings.Join(clipped, "\n"))
}

// scrollPanel is a bordered panel whose body scrolls in a viewport. The
// offset comes from the app state; the viewport only windows the content.
type scrollPanel struct {
	viewport viewport.Model
}

func newScrollPanel() *scrollPanel {
	vp := viewport.New(40, 20)
	// Keys and the wheel are turned into app actions by the model.
	vp.MouseWheelEnabled = false
	return &scrollPanel{viewport: vp}
}

// followTail scrolls a panel to its last line.
const followTail = -1

// render draws lines in a width x height box starting at line offset, or at
// the tail for followTail. The offset is clamped so the last page stays full.
func (p *scrollPanel) render(lines []string, width, height, offset int) string {
	innerW, innerH := panelInner(width, height)
	p.viewport.Width = innerW
	p.viewport.Height = innerH

	clipped := make([]string, len(lines))
	for i, line := range lines {
		clipped[i] = app.Truncate(line, innerW)
	}
	p.viewport.SetContent(strings.Join(clipped, "\n"))
	if offset == followTail {
		p.viewport.GotoBottom()
	} else {
		p.viewport.SetYOffset(offset)
	}

	return panelStyle.
		Width(max(width-2, 1)).
		Height(innerH).
		Render(p.viewport.View())
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// padLeft right-aligns s in width cells.
func padLeft(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// formatDate shows the calendar date of an RFC 3339 timestamp.
func formatDate(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format(time.DateOnly)
	}
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// formatClock shows the time of day of a timestamp, without fractions.
func formatClock(ts string) string {
	if i := strings.LastIndexByte(ts, 'T'); i >= 0 {
		ts = ts[i+1:]
	}
	if i := strings.IndexAny(ts, ".Z+"); i >= 0 {
		ts = ts[:i]
	}
	return ts
}

// view renders the whole screen.
func (m Model) view() string {
	s := m.app.State
	switch s.Screen {
	case app.ScreenDetail:
		return renderDetail(s, m.panes.detail, m.spinner.View())
	case app.ScreenAnalysis:
		return renderAnalysis(s, m.panes.analysis, m.spinner.View())
	case app.ScreenProposal:
		return m.renderProposal(s)
	default:
		return renderList(s, m.panes.list, m.spinner.View())
	}
}

// joinRows stacks screen regions top to bottom.
func joinRows(rows ...string) string {
	return strings.Join(rows, "\n")
}
