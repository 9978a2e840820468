package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/newhook/glass/internal/api"
	"github.com/newhook/glass/internal/app"
)

// maxBreadcrumbs is how many of the most recent breadcrumbs are shown.
const maxBreadcrumbs = 15

const headerHeight = 3

func detailHints(s *app.State) []keyHint {
	hints := []keyHint{
		{"↑↓/jk/C-d/u", "scroll"},
		{"r", "refresh"},
		{"q/Esc", "back"},
	}
	if s.CurrentIssue == nil {
		return hints
	}
	ready := !s.IsRefreshingDetail
	for _, a := range app.AvailableActions(s.CurrentIssue.State, ready) {
		key := a.Key
		if key == "enter" {
			key = "Enter"
		}
		hints = append(hints, keyHint{key, a.Label})
	}
	return hints
}

func renderDetail(s *app.State, pane *scrollPanel, spin string) string {
	width, height := s.TerminalWidth, s.TerminalHeight
	bodyHeight := max(height-headerHeight-2, minPanelHeight)
	innerW, _ := panelInner(width, bodyHeight)

	var body []string
	switch {
	case s.CurrentIssue != nil:
		body = detailLines(s.CurrentIssue, innerW)
	case s.IsRefreshingDetail:
		body = []string{dimStyle.Render("Loading...")}
	default:
		body = []string{dimStyle.Render("No issue selected")}
	}

	return joinRows(
		renderPanel([]string{detailHeader(s, spin)}, width, headerHeight),
		pane.render(body, width, bodyHeight, s.DetailScroll),
		renderError(s),
		renderHints(detailHints(s), width),
	)
}

func detailHeader(s *app.State, spin string) string {
	var title, status string
	switch {
	case s.CurrentIssue != nil:
		title = s.CurrentIssue.Source.Title
		if title == "" {
			title = "Unknown"
		}
		status = s.CurrentIssue.Status
		if s.CurrentIssue.State != nil {
			status = s.CurrentIssue.State.Status()
		}
	case s.IssueByID(s.OpenIssueID) != nil:
		issue := s.IssueByID(s.OpenIssueID)
		title, status = issue.Title, issue.Status
	default:
		title = "No issue"
	}

	header := boldStyle.Render(title)
	if status != "" {
		badge := badgeFor(status)
		header += "  " + badge.style().Render(badge.Icon+" "+strings.ToUpper(status))
	}
	if s.IsRefreshingDetail || s.IsLoading() {
		header += " " + spinnerStyle.Render(spin)
	}
	return header
}

func section(name string) []string {
	return []string{sectionStyle.Render("── " + name + " ──"), ""}
}

func field(label, value string) string {
	return labelStyle.Render(label+": ") + value
}

func joinNonEmpty(sep string, parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(p string) bool { return p == "" }), sep)
}

func nameVersion(nv *api.NameVersion) string {
	if nv == nil {
		return ""
	}
	return joinNonEmpty(" ", nv.Name, nv.Version)
}

// detailLines renders the issue detail as scrollable lines.
func detailLines(d *api.IssueDetail, width int) []string {
	src := d.Source
	lines := section("Source")
	if src.Culprit != "" {
		lines = append(lines, field("Culprit", src.Culprit))
	}
	if src.Environment != "" {
		lines = append(lines, field("Environment", src.Environment))
	}
	if src.Release != "" {
		lines = append(lines, field("Release", src.Release))
	}
	var events, users uint64
	if src.EventCount != nil {
		events = *src.EventCount
	}
	if src.UserCount != nil {
		users = *src.UserCount
	}
	lines = append(lines, field("Events", fmt.Sprint(events))+" │ "+field("Users", fmt.Sprint(users)), "")

	if req := src.Request; req != nil {
		lines = append(lines, section("Request")...)
		lines = append(lines, methodStyle.Render(req.Method)+" "+req.URL)
		for _, kv := range req.Query {
			lines = append(lines, labelStyle.Render("  ?")+kv[0]+"="+app.Truncate(kv[1], 50))
		}
		if len(req.Data) > 0 && string(req.Data) != "null" {
			lines = append(lines, labelStyle.Render("  Body: ")+app.Truncate(string(req.Data), 60))
		}
		lines = append(lines, "")
	}

	if user := src.User; user != nil {
		lines = append(lines, section("User")...)
		var parts []string
		switch {
		case user.Email != "":
			parts = append(parts, user.Email)
		case user.ID != "":
			parts = append(parts, field("ID", app.Truncate(user.ID, 30)))
		}
		if user.IPAddress != "" {
			parts = append(parts, field("IP", user.IPAddress))
		}
		if geo := user.Geo; geo != nil {
			if loc := joinNonEmpty(", ", geo.City, geo.Region, geo.CountryCode); loc != "" {
				parts = append(parts, loc)
			}
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, " │ "))
		}
		lines = append(lines, "")
	}

	if ctx := src.Contexts; ctx != nil {
		lines = append(lines, section("Context")...)
		var device string
		if ctx.Device != nil {
			device = joinNonEmpty(" ", ctx.Device.Brand, ctx.Device.Model)
		}
		if joined := joinNonEmpty(" │ ", nameVersion(ctx.Browser), nameVersion(ctx.OS), device, nameVersion(ctx.Runtime)); joined != "" {
			lines = append(lines, joined)
		}
		lines = append(lines, "")
	}

	if len(src.Exceptions) > 0 {
		lines = append(lines, section("Exception")...)
		for _, exc := range src.Exceptions {
			lines = append(lines, exceptionStyle.Render(exc.Type)+": "+exc.Value)
			if exc.Stacktrace == nil {
				continue
			}
			lines = append(lines, "")
			for _, f := range exc.Stacktrace.Frames {
				lines = append(lines, frameLine(f))
			}
		}
		lines = append(lines, "")
	}

	if crumbs := src.Breadcrumbs; len(crumbs) > 0 {
		lines = append(lines, section("Breadcrumbs")...)
		for _, c := range crumbs[max(len(crumbs)-maxBreadcrumbs, 0):] {
			lines = append(lines, breadcrumbLine(c))
		}
		lines = append(lines, "")
	}

	if len(src.Tags) > 0 {
		lines = append(lines, section("Tags")...)
		keys := make([]string, 0, len(src.Tags))
		for k := range src.Tags {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		tags := make([]string, 0, len(keys))
		for _, k := range keys {
			tags = append(tags, k+":"+src.Tags[k])
		}
		lines = append(lines, app.WordWrap(strings.Join(tags, "  "), width)...)
		lines = append(lines, "")
	}

	lines = append(lines, stateLines(d.State, width)...)
	return lines
}

func frameLine(f api.StackFrame) string {
	filename, function := f.Filename, f.Function
	if filename == "" {
		filename = "?"
	}
	if function == "" {
		function = "?"
	}
	lineno := ""
	if f.Lineno > 0 {
		lineno = fmt.Sprint(f.Lineno)
	}
	return labelStyle.Render("  at ") + functionStyle.Render(function) +
		labelStyle.Render(" (") + filename + labelStyle.Render(":") + lineno + labelStyle.Render(")")
}

func breadcrumbLine(c api.Breadcrumb) string {
	category := c.Category
	if category == "" {
		category = "?"
	}
	msg := c.Message
	if c.Data != nil && (category == "http" || category == "httplib") {
		msg = joinNonEmpty(" ", c.Data.Method, app.Truncate(c.Data.URL, 40))
		if c.Data.StatusCode != nil {
			msg += fmt.Sprintf(" → %d", *c.Data.StatusCode)
		}
	}
	return labelStyle.Render(padLeft(formatClock(c.Timestamp), 8)+" ") +
		breadcrumbStyle(category).Render(padRight(category, 12)+" ") +
		app.Truncate(msg, 55)
}

// stateLines renders the part of the detail that depends on the issue state.
func stateLines(state api.IssueState, width int) []string {
	var lines []string
	switch st := state.(type) {
	case api.StatePendingApproval:
		lines = append(lines, successStyle.Bold(true).Render("── Proposal ──"), "")
		for _, line := range strings.Split(st.Proposal, "\n") {
			lines = append(lines, proposalLine(line))
		}
	case api.StateError:
		lines = append(lines, errorStyle.Bold(true).Render("── Error ──"), "")
		for _, line := range app.WordWrap(st.Message, width) {
			lines = append(lines, errorStyle.Render(line))
		}
	case api.StateInProgress:
		lines = append(lines, worktreeLines(st.WorktreePath, st.WorktreeBranch)...)
	case api.StatePendingReview:
		lines = append(lines, worktreeLines(st.WorktreePath, st.WorktreeBranch)...)
	}
	return lines
}

func worktreeLines(path, branch string) []string {
	return append(section("Worktree"), field("Path", path), field("Branch", branch))
}

// proposalLine gives a proposal line light markdown styling for the detail
// preview. The proposal screen renders the full markdown.
func proposalLine(line string) string {
	switch {
	case strings.HasPrefix(line, "## "):
		return boldStyle.Render(line[3:])
	case strings.HasPrefix(line, "```"):
		return dimStyle.Render(line)
	case strings.HasPrefix(line, "+ "):
		return successStyle.Render(line)
	case strings.HasPrefix(line, "- "):
		return errorStyle.Render(line)
	}
	return line
}
