package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/newhook/glass/internal/api"
	"github.com/newhook/glass/internal/app"
	"github.com/newhook/glass/internal/logging"
)

// markdownCache keeps the last rendered proposal so redraws at the same
// width skip glamour.
type markdownCache struct {
	text  string
	width int
	lines []string
}

func (c *markdownCache) render(text string, width int) []string {
	if c.lines != nil && c.text == text && c.width == width {
		return c.lines
	}
	c.text, c.width, c.lines = text, width, renderMarkdown(text, width)
	return c.lines
}

// renderMarkdown renders text as terminal markdown, falling back to the raw
// lines when glamour fails.
func renderMarkdown(text string, width int) []string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.Warn("failed to create markdown renderer", "error", err)
		return strings.Split(text, "\n")
	}
	rendered, err := r.Render(text)
	if err != nil {
		logging.Warn("failed to render proposal", "error", err)
		return strings.Split(text, "\n")
	}
	return strings.Split(strings.Trim(rendered, "\n"), "\n")
}

func proposalHints(s *app.State) []keyHint {
	hints := []keyHint{
		{"q/Esc", "back"},
		{"↑↓/C-d/u", "scroll"},
	}
	if s.CurrentIssue != nil {
		for _, a := range app.ProposalActions(s.CurrentIssue.State) {
			hints = append(hints, keyHint{a.Key, a.Label})
		}
	}
	return hints
}

func (m Model) renderProposal(s *app.State) string {
	width, height := s.TerminalWidth, s.TerminalHeight
	bodyHeight := max(height-headerHeight-2, minPanelHeight)
	innerW, _ := panelInner(width, bodyHeight)

	title := "Proposal"
	var proposal string
	hasProposal := false
	if s.CurrentIssue != nil {
		if s.CurrentIssue.Source.Title != "" {
			title = s.CurrentIssue.Source.Title
		}
		if st, ok := s.CurrentIssue.State.(api.StatePendingApproval); ok {
			proposal, hasProposal = st.Proposal, true
		}
	}

	header := boldStyle.Render(title)
	var body []string
	if hasProposal {
		header += badgeFor(api.StatusPendingApproval).style().Render(" ◉ pending approval")
		body = m.proposal.render(proposal, innerW)
	} else {
		body = []string{dimStyle.Render("No proposal available")}
	}

	return joinRows(
		renderPanel([]string{header}, width, headerHeight),
		m.panes.proposal.render(body, width, bodyHeight, s.ProposalScroll),
		renderError(s),
		renderHints(proposalHints(s), width),
	)
}
