package app

import (
	"github.com/newhook/glass/internal/api"
)

// Message is a background task result delivered to the control loop.
type Message interface {
	isMessage()
}

// ListRefreshComplete carries the result of a list load or refresh.
type ListRefreshComplete struct {
	// Cached is true for the GET of the server's cached list.
	Cached   bool
	Response *api.ListIssuesResponse
	Err      error
}

// DetailRefreshComplete carries the result of a detail load or refresh.
type DetailRefreshComplete struct {
	IssueID string
	Cached  bool
	Detail  *api.IssueDetail
	Err     error
}

// AnalysisEventReceived is one decoded element of an issue's event stream.
type AnalysisEventReceived struct {
	IssueID string
	Event   api.AnalysisEvent
}

// AnalysisStreamEnded is the last message of a stream task. Err is nil when
// the server ended the stream.
type AnalysisStreamEnded struct {
	IssueID string
	Err     error
}

// ActionComplete acknowledges a lifecycle action.
type ActionComplete struct {
	Request ActionRequest
	Err     error
}

// SessionResolved carries the session path for the interactive hand-off.
type SessionResolved struct {
	IssueID string
	Path    string
	Err     error
}

func (ListRefreshComplete) isMessage()   {}
func (DetailRefreshComplete) isMessage() {}
func (AnalysisEventReceived) isMessage() {}
func (AnalysisStreamEnded) isMessage()   {}
func (ActionComplete) isMessage()        {}
func (SessionResolved) isMessage()       {}

// ActionOp is a lifecycle action on an issue.
type ActionOp int

const (
	OpAnalyze ActionOp = iota
	OpApprove
	OpReject
	OpComplete
	OpRetry
)

func (op ActionOp) String() string {
	switch op {
	case OpAnalyze:
		return "analyze"
	case OpApprove:
		return "approve"
	case OpReject:
		return "reject"
	case OpComplete:
		return "complete"
	case OpRetry:
		return "retry"
	default:
		return "unknown"
	}
}

// ActionRequest describes an action for the dispatcher to run.
type ActionRequest struct {
	Op      ActionOp
	IssueID string
	// Headless is set for analyses started from the list screen.
	Headless bool
}
