package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/newhook/glass/internal/api"
	"github.com/newhook/glass/internal/app"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("238"))

	hotkeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("117"))

	actionBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("117"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boldStyle = lipgloss.NewStyle().Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	methodStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	functionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	exceptionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// Colors per issue status.
var (
	colorPending   = lipgloss.Color("241")
	colorAnalyzing = lipgloss.Color("214")
	colorApproval  = lipgloss.Color("117")
	colorWorking   = lipgloss.Color("75")
	colorReview    = lipgloss.Color("42")
	colorError     = lipgloss.Color("196")
	colorUnknown   = lipgloss.Color("255")
)

// statusBadge is how an issue status is drawn: an icon, a short label for
// the list, and a color.
type statusBadge struct {
	Icon  string
	Label string
	Color lipgloss.Color
}

func badgeFor(status string) statusBadge {
	switch status {
	case api.StatusPending:
		return statusBadge{"○", "PENDING", colorPending}
	case api.StatusAnalyzing:
		return statusBadge{"◐", "ANALYZE", colorAnalyzing}
	case api.StatusPendingApproval:
		return statusBadge{"◉", "APPROVAL", colorApproval}
	case api.StatusInProgress:
		return statusBadge{"◐", "WORKING", colorWorking}
	case api.StatusPendingReview:
		return statusBadge{"●", "REVIEW", colorReview}
	case api.StatusError:
		return statusBadge{"✗", "ERROR", colorError}
	default:
		return statusBadge{"?", "UNKNOWN", colorUnknown}
	}
}

func (b statusBadge) style() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(b.Color)
}

// activityStyle returns the style for one activity log line.
func activityStyle(style app.ActivityStyle) lipgloss.Style {
	switch style {
	case app.StyleDimmed:
		return dimStyle
	case app.StyleTool:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	case app.StyleThinking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case app.StyleError:
		return errorStyle
	case app.StyleSuccess:
		return successStyle
	default:
		return lipgloss.NewStyle()
	}
}

// breadcrumbStyle colors a breadcrumb by category.
func breadcrumbStyle(category string) lipgloss.Style {
	switch category {
	case "http", "fetch", "httplib":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	case "console":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case "navigation", "ui.click":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	case "error", "exception":
		return errorStyle
	case "query":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	case "redis":
		return successStyle
	default:
		return dimStyle
	}
}
