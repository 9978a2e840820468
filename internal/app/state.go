package app

import (
	"github.com/newhook/glass/internal/api"
)

// Screen is the active view.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
	ScreenAnalysis
	ScreenProposal
)

func (s Screen) String() string {
	switch s {
	case ScreenList:
		return "list"
	case ScreenDetail:
		return "detail"
	case ScreenAnalysis:
		return "analysis"
	case ScreenProposal:
		return "proposal"
	default:
		return "unknown"
	}
}

// ActivityStyle selects how an activity line is rendered.
type ActivityStyle int

const (
	StyleNormal ActivityStyle = iota
	StyleDimmed
	StyleTool
	StyleThinking
	StyleError
	StyleSuccess
)

// ActivityLine is one row of the analysis activity log.
type ActivityLine struct {
	Icon  string
	Text  string
	Style ActivityStyle
}

const (
	IconThinking = "◐"
	IconTool     = "🔧"
	IconBlank    = "  "
	IconError    = "✗"
	IconSuccess  = "✓"
	IconStart    = "▶"
)

// ErrorKind identifies the operation that produced State.Error.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrList
	ErrDetail
	ErrAction
	ErrStream
	ErrSession
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// wrapMargin is subtracted from the terminal width for activity text.
	wrapMargin = 6
	// minWrapWidth keeps wrapping readable on very narrow terminals.
	minWrapWidth = 40
)

// State is everything the UI renders from. It is owned by the control loop;
// background tasks never touch it.
type State struct {
	Screen Screen

	// List screen.
	Issues        []api.Issue
	SelectedIndex int

	// OpenIssueID is the issue shown on the detail, analysis and proposal
	// screens. It does not follow the list selection, which can move when
	// the list is refreshed.
	OpenIssueID string

	// Detail screen. CurrentIssue is nil until the first fetch lands.
	CurrentIssue *api.IssueDetail
	DetailScroll int

	// Analysis screen.
	AnalysisLines       []ActivityLine
	AnalysisScroll      int
	IsStreamingAnalysis bool
	// TextBuffer accumulates text deltas until they are flushed into lines.
	TextBuffer string

	// Proposal screen.
	ProposalScroll int

	loading            int
	IsRefreshing       bool
	IsRefreshingDetail bool

	// Error is the last error shown to the user, empty when none.
	Error     string
	errorKind ErrorKind

	TerminalWidth  int
	TerminalHeight int

	ShouldQuit bool
}

// NewState returns the startup state: list screen, 80x24 terminal.
func NewState() *State {
	return &State{
		Screen:         ScreenList,
		TerminalWidth:  defaultWidth,
		TerminalHeight: defaultHeight,
	}
}

// SetTerminalSize records the terminal geometry.
func (s *State) SetTerminalSize(width, height int) {
	s.TerminalWidth = width
	s.TerminalHeight = height
}

// HalfPage is the Ctrl+D/Ctrl+U scroll distance.
func (s *State) HalfPage() int {
	return max((s.TerminalHeight-6)/2, 1)
}

// WrapWidth is the width activity text is wrapped to.
func (s *State) WrapWidth() int {
	return max(s.TerminalWidth-wrapMargin, minWrapWidth)
}

// ClampSelection keeps SelectedIndex inside the issue list.
func (s *State) ClampSelection() {
	if len(s.Issues) == 0 {
		s.SelectedIndex = 0
		return
	}
	s.SelectedIndex = min(max(s.SelectedIndex, 0), len(s.Issues)-1)
}

// SelectedIssue returns the highlighted list row, or nil when the list is empty.
func (s *State) SelectedIssue() *api.Issue {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Issues) {
		return nil
	}
	return &s.Issues[s.SelectedIndex]
}

// SelectedIssueID returns the id of the highlighted issue.
func (s *State) SelectedIssueID() (string, bool) {
	issue := s.SelectedIssue()
	if issue == nil {
		return "", false
	}
	return issue.ID, true
}

// ResetAnalysis clears the activity log for a fresh analysis.
func (s *State) ResetAnalysis() {
	s.AnalysisLines = nil
	s.AnalysisScroll = 0
	s.TextBuffer = ""
}

// AppendLine adds a line to the activity log.
func (s *State) AppendLine(icon, text string, style ActivityStyle) {
	s.AnalysisLines = append(s.AnalysisLines, ActivityLine{Icon: icon, Text: text, Style: style})
}

// SetError records a user-visible error from an operation of the given kind.
func (s *State) SetError(kind ErrorKind, msg string) {
	s.Error = msg
	s.errorKind = kind
}

// ClearError drops the current error if it came from an operation of the
// given kind.
func (s *State) ClearError(kind ErrorKind) {
	if s.errorKind == kind {
		s.Error = ""
		s.errorKind = ErrNone
	}
}

// ErrorKind returns the kind of operation that produced Error.
func (s *State) ErrorKind() ErrorKind {
	return s.errorKind
}

// IsLoading reports whether a user-initiated action is awaiting its result.
func (s *State) IsLoading() bool {
	return s.loading > 0
}

func (s *State) beginLoading() {
	s.loading++
}

func (s *State) endLoading() {
	if s.loading > 0 {
		s.loading--
	}
}

// OpenIssue returns the id of the issue open on a non-list screen.
func (s *State) OpenIssue() (string, bool) {
	if s.Screen == ScreenList || s.OpenIssueID == "" {
		return "", false
	}
	return s.OpenIssueID, true
}

// IssueByID returns the list row for id, or nil when the list lacks it.
func (s *State) IssueByID(id string) *api.Issue {
	for i := range s.Issues {
		if s.Issues[i].ID == id {
			return &s.Issues[i]
		}
	}
	return nil
}

// viewingIssue reports whether id is the issue currently open.
func (s *State) viewingIssue(id string) bool {
	open, ok := s.OpenIssue()
	return ok && open == id
}
