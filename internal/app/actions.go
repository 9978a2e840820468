package app

import (
	"github.com/newhook/glass/internal/api"
)

// ActionKind is a user intent resolved from input.
type ActionKind int

const (
	ActNone ActionKind = iota
	ActQuit

	ActMoveSelection
	ActSelectIndex
	ActJumpToTop
	ActJumpToBottom
	ActScrollDetail
	ActScrollAnalysis
	ActScrollProposal

	ActOpenSelected
	ActBackToList
	ActBackToDetail
	ActBackFromProposal
	ActOpenProposal
	ActOpenAnalysis

	ActRefresh
	ActRefreshDetail

	ActAnalyzeFromList
	ActAnalyzeFromDetail
	ActApprove
	ActReject
	ActCompleteReview
	ActRetry
	ActInteractive
)

// Action is an ActionKind plus its argument. N is the delta for moves and
// scrolls, and the row for ActSelectIndex.
type Action struct {
	Kind ActionKind
	N    int
}

// Do is shorthand for an Action without an argument.
func Do(kind ActionKind) Action {
	return Action{Kind: kind}
}

// IssueAction is an action offered on the detail screen.
type IssueAction struct {
	Key   string
	Label string
	Kind  ActionKind
}

var (
	actionAnalyze     = IssueAction{Key: "a", Label: "analyze", Kind: ActAnalyzeFromDetail}
	actionReanalyze   = IssueAction{Key: "a", Label: "re-analyze", Kind: ActAnalyzeFromDetail}
	actionViewStream  = IssueAction{Key: "enter", Label: "view analysis", Kind: ActOpenAnalysis}
	actionViewPropose = IssueAction{Key: "enter", Label: "view proposal", Kind: ActOpenProposal}
	actionInteractive = IssueAction{Key: "i", Label: "interactive", Kind: ActInteractive}
	actionDone        = IssueAction{Key: "d", Label: "done", Kind: ActCompleteReview}
	actionRetry       = IssueAction{Key: "R", Label: "retry", Kind: ActRetry}
)

// AvailableActions lists what the user can do with an issue in the given
// state. Analysis is only offered once the detail is loaded and no fetch is
// in flight.
func AvailableActions(state api.IssueState, detailsReady bool) []IssueAction {
	var actions []IssueAction
	switch state.(type) {
	case api.StatePending:
		if detailsReady {
			actions = append(actions, actionAnalyze)
		}
	case api.StateAnalyzing:
		actions = append(actions, actionViewStream, actionInteractive)
	case api.StatePendingApproval:
		actions = append(actions, actionViewPropose)
		if detailsReady {
			actions = append(actions, actionReanalyze)
		}
		actions = append(actions, actionInteractive)
	case api.StateInProgress:
		actions = append(actions, actionInteractive)
	case api.StatePendingReview:
		actions = append(actions, actionDone, actionInteractive)
	case api.StateError:
		if detailsReady {
			actions = append(actions, actionReanalyze)
		}
		actions = append(actions, actionRetry, actionInteractive)
	}
	return actions
}

// Allows reports whether kind is among the actions offered for state.
func Allows(state api.IssueState, kind ActionKind) bool {
	for _, a := range AvailableActions(state, true) {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// ProposalActions are the actions offered on the proposal screen.
func ProposalActions(state api.IssueState) []IssueAction {
	if _, ok := state.(api.StatePendingApproval); !ok {
		return nil
	}
	return []IssueAction{
		{Key: "A", Label: "approve", Kind: ActApprove},
		{Key: "x", Label: "reject", Kind: ActReject},
	}
}
