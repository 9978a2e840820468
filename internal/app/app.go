// Package app holds the client state machine: the state the UI renders from,
// the transitions user actions trigger, and the reduction of background
// results into that state.
package app

import (
	"errors"

	"github.com/newhook/glass/internal/api"
	"github.com/newhook/glass/internal/logging"
)

// App owns the State and the Dispatcher. It is not safe for concurrent use;
// only the control loop calls it.
type App struct {
	State *State
	bg    Dispatcher

	// refreshListAfterLoad chains the startup cached load into a refresh.
	refreshListAfterLoad bool

	// detailFetchID is the issue the in-flight detail fetch is for.
	detailFetchID string
	// refetchDetail asks for a remote refresh once the in-flight fetch lands.
	refetchDetail bool

	// streamID is the issue the analysis stream is connected to.
	streamID string

	// handoffPath is a resolved session waiting for the control loop.
	handoffPath string
}

// New creates an App in its startup state.
func New(bg Dispatcher) *App {
	return &App{State: NewState(), bg: bg}
}

// Close stops background tasks.
func (a *App) Close() {
	a.bg.Close()
}

// Start loads the cached issue list, then refreshes it from upstream.
func (a *App) Start() {
	a.State.IsRefreshing = true
	a.refreshListAfterLoad = true
	a.bg.SpawnListLoad()
}

// StartRefresh refreshes the issue list. It is a no-op while a list fetch
// is in flight.
func (a *App) StartRefresh() {
	if a.State.IsRefreshing {
		return
	}
	a.State.IsRefreshing = true
	a.bg.SpawnListRefresh()
}

// StartDetailRefresh refreshes the open issue from upstream. It is a no-op
// while a fetch for the same issue is in flight.
func (a *App) StartDetailRefresh() {
	a.fetchDetail(false)
}

// reloadDetail re-reads the open issue from the server's cache.
func (a *App) reloadDetail() {
	a.fetchDetail(true)
}

func (a *App) fetchDetail(cached bool) {
	id, ok := a.State.OpenIssue()
	if !ok {
		return
	}
	if a.State.IsRefreshingDetail && a.detailFetchID == id {
		if cached {
			a.refetchDetail = true
		}
		return
	}
	a.State.IsRefreshingDetail = true
	a.detailFetchID = id
	if cached {
		a.bg.SpawnDetailLoad(id)
	} else {
		a.bg.SpawnDetailRefresh(id)
	}
}

// StartAnalysisStream connects to the issue's event stream. Only one stream
// runs at a time: it is a no-op until the running stream reports its end.
func (a *App) StartAnalysisStream(issueID string) {
	if a.State.IsStreamingAnalysis {
		logging.Debug("already streaming analysis", "issue_id", issueID, "streaming", a.streamID)
		return
	}
	a.State.IsStreamingAnalysis = true
	a.streamID = issueID
	a.bg.SpawnAnalysisStream(issueID)
}

// MoveSelection moves the list highlight by delta, clamped to the list.
func (a *App) MoveSelection(delta int) {
	if len(a.State.Issues) == 0 {
		return
	}
	a.State.SelectedIndex += delta
	a.State.ClampSelection()
}

// SelectIndex highlights row i if it exists.
func (a *App) SelectIndex(i int) {
	if i < 0 || i >= len(a.State.Issues) {
		return
	}
	a.State.SelectedIndex = i
}

func (a *App) JumpToTop() {
	a.State.SelectedIndex = 0
}

func (a *App) JumpToBottom() {
	if len(a.State.Issues) > 0 {
		a.State.SelectedIndex = len(a.State.Issues) - 1
	}
}

// OpenSelected shows the highlighted issue. The detail arrives later: a
// cached load followed by a remote refresh.
func (a *App) OpenSelected() {
	if len(a.State.Issues) == 0 {
		return
	}
	a.State.Screen = ScreenDetail
	a.State.OpenIssueID = a.State.Issues[a.State.SelectedIndex].ID
	a.State.DetailScroll = 0
	a.State.CurrentIssue = nil
	a.State.ResetAnalysis()
	a.refetchDetail = false
	a.reloadDetail()
	a.refetchDetail = true
}

func (a *App) BackToList() {
	a.State.Screen = ScreenList
	a.State.OpenIssueID = ""
	a.State.CurrentIssue = nil
	a.State.DetailScroll = 0
	a.State.ResetAnalysis()
	a.refetchDetail = false
}

// BackToDetail leaves the analysis screen and reloads the issue.
func (a *App) BackToDetail() {
	if a.State.Screen == ScreenList {
		return
	}
	a.State.Screen = ScreenDetail
	a.reloadDetail()
}

func (a *App) BackFromProposal() {
	if a.State.Screen == ScreenList {
		return
	}
	a.State.Screen = ScreenDetail
}

func (a *App) OpenProposal() {
	if a.State.Screen != ScreenDetail {
		return
	}
	a.State.Screen = ScreenProposal
	a.State.ProposalScroll = 0
}

func (a *App) OpenAnalysis() {
	if a.State.Screen != ScreenDetail {
		return
	}
	a.State.Screen = ScreenAnalysis
}

func (a *App) ScrollDetail(delta int) {
	a.State.DetailScroll = max(a.State.DetailScroll+delta, 0)
}

func (a *App) ScrollAnalysis(delta int) {
	a.State.AnalysisScroll = max(a.State.AnalysisScroll+delta, 0)
}

func (a *App) ScrollProposal(delta int) {
	a.State.ProposalScroll = max(a.State.ProposalScroll+delta, 0)
}

// AnalyzeFromList starts a headless analysis of the highlighted issue.
func (a *App) AnalyzeFromList() {
	id, ok := a.State.SelectedIssueID()
	if !ok {
		return
	}
	a.spawnAction(ActionRequest{Op: OpAnalyze, IssueID: id, Headless: true})
}

// AnalyzeFromDetail starts an analysis of the open issue and switches to the
// analysis screen.
func (a *App) AnalyzeFromDetail() {
	if a.State.CurrentIssue == nil || a.State.IsRefreshingDetail {
		a.State.SetError(ErrAction, "Please wait for issue details to load")
		return
	}
	id, ok := a.State.OpenIssue()
	if !ok {
		return
	}
	a.State.Screen = ScreenAnalysis
	a.State.ResetAnalysis()
	a.State.AppendLine(IconStart, "Starting analysis...", StyleNormal)
	a.spawnAction(ActionRequest{Op: OpAnalyze, IssueID: id})
}

// Approve accepts the proposal and returns to the detail screen.
func (a *App) Approve() {
	a.proposalDecision(OpApprove)
}

// Reject discards the proposal and returns to the detail screen.
func (a *App) Reject() {
	a.proposalDecision(OpReject)
}

func (a *App) proposalDecision(op ActionOp) {
	id, ok := a.State.OpenIssue()
	if !ok {
		return
	}
	a.State.Screen = ScreenDetail
	a.spawnAction(ActionRequest{Op: op, IssueID: id})
}

func (a *App) CompleteReview() {
	a.issueAction(OpComplete)
}

func (a *App) RetryError() {
	a.issueAction(OpRetry)
}

func (a *App) issueAction(op ActionOp) {
	id, ok := a.State.OpenIssue()
	if !ok {
		return
	}
	a.spawnAction(ActionRequest{Op: op, IssueID: id})
}

func (a *App) spawnAction(req ActionRequest) {
	a.State.beginLoading()
	a.bg.SpawnAction(req)
}

// Interactive resolves the open issue's session for the interactive hand-off.
func (a *App) Interactive() {
	id, ok := a.State.OpenIssue()
	if !ok {
		return
	}
	a.State.beginLoading()
	a.bg.SpawnSessionLookup(id)
}

// TakeHandoff returns a session path the control loop should hand the
// terminal to, clearing it.
func (a *App) TakeHandoff() (string, bool) {
	path := a.handoffPath
	a.handoffPath = ""
	return path, path != ""
}

// ResumeAfterHandoff is called when the interactive program exits.
func (a *App) ResumeAfterHandoff(err error) {
	if err != nil {
		a.State.SetError(ErrSession, "Interactive session failed: "+err.Error())
	}
	a.reloadDetail()
}

// Execute applies a user action.
func (a *App) Execute(action Action) {
	switch action.Kind {
	case ActNone:
	case ActQuit:
		a.State.ShouldQuit = true
	case ActMoveSelection:
		a.MoveSelection(action.N)
	case ActSelectIndex:
		a.SelectIndex(action.N)
	case ActJumpToTop:
		a.JumpToTop()
	case ActJumpToBottom:
		a.JumpToBottom()
	case ActScrollDetail:
		a.ScrollDetail(action.N)
	case ActScrollAnalysis:
		a.ScrollAnalysis(action.N)
	case ActScrollProposal:
		a.ScrollProposal(action.N)
	case ActOpenSelected:
		a.OpenSelected()
	case ActBackToList:
		a.BackToList()
	case ActBackToDetail:
		a.BackToDetail()
	case ActBackFromProposal:
		a.BackFromProposal()
	case ActOpenProposal:
		a.OpenProposal()
	case ActOpenAnalysis:
		a.OpenAnalysis()
	case ActRefresh:
		a.StartRefresh()
	case ActRefreshDetail:
		a.StartDetailRefresh()
	case ActAnalyzeFromList:
		a.AnalyzeFromList()
	case ActAnalyzeFromDetail:
		a.AnalyzeFromDetail()
	case ActApprove:
		a.Approve()
	case ActReject:
		a.Reject()
	case ActCompleteReview:
		a.CompleteReview()
	case ActRetry:
		a.RetryError()
	case ActInteractive:
		a.Interactive()
	}
}

// PollBackground drains finished background work into the state, in arrival
// order. It returns the number of messages handled.
func (a *App) PollBackground() int {
	msgs := a.bg.Poll()
	for _, msg := range msgs {
		a.handle(msg)
	}
	return len(msgs)
}

func (a *App) handle(msg Message) {
	switch m := msg.(type) {
	case ListRefreshComplete:
		a.handleList(m)
	case DetailRefreshComplete:
		a.handleDetail(m)
	case AnalysisEventReceived:
		if m.IssueID != a.streamID || !a.State.viewingIssue(m.IssueID) {
			logging.Debug("dropping analysis event for inactive issue", "issue_id", m.IssueID, "kind", m.Event.Kind())
			return
		}
		a.State.ClearError(ErrStream)
		Reduce(a.State, m.Event)
	case AnalysisStreamEnded:
		a.handleStreamEnded(m)
	case ActionComplete:
		a.handleAction(m)
	case SessionResolved:
		a.State.endLoading()
		if m.Err != nil {
			a.State.SetError(ErrSession, m.Err.Error())
			return
		}
		a.State.ClearError(ErrSession)
		if a.State.viewingIssue(m.IssueID) {
			a.handoffPath = m.Path
		}
	}
}

func (a *App) handleList(m ListRefreshComplete) {
	a.State.IsRefreshing = false
	if m.Err != nil {
		a.State.SetError(ErrList, m.Err.Error())
	} else if m.Response != nil {
		selected, hadSelection := a.State.SelectedIssueID()
		a.State.Issues = m.Response.Issues
		a.State.ClearError(ErrList)
		a.State.ClampSelection()
		if hadSelection {
			for i, issue := range a.State.Issues {
				if issue.ID == selected {
					a.State.SelectedIndex = i
					break
				}
			}
		}
	}
	if m.Cached && a.refreshListAfterLoad {
		a.refreshListAfterLoad = false
		a.StartRefresh()
	}
}

func (a *App) handleDetail(m DetailRefreshComplete) {
	if !a.State.IsRefreshingDetail || m.IssueID != a.detailFetchID {
		logging.Debug("dropping superseded detail result", "issue_id", m.IssueID)
		return
	}
	a.State.IsRefreshingDetail = false
	if !a.State.viewingIssue(m.IssueID) {
		logging.Debug("dropping detail for inactive issue", "issue_id", m.IssueID)
		return
	}

	if m.Err != nil {
		a.State.SetError(ErrDetail, m.Err.Error())
	} else if m.Detail != nil {
		a.State.CurrentIssue = m.Detail
		a.State.ClearError(ErrDetail)
		if _, analyzing := m.Detail.State.(api.StateAnalyzing); analyzing {
			a.StartAnalysisStream(m.Detail.ID)
		}
	}

	if a.refetchDetail {
		a.refetchDetail = false
		a.StartDetailRefresh()
	}
}

func (a *App) handleStreamEnded(m AnalysisStreamEnded) {
	if m.IssueID != a.streamID {
		return
	}
	a.State.IsStreamingAnalysis = false
	a.streamID = ""

	if !a.State.viewingIssue(m.IssueID) {
		// The stream outlived its issue; connect the one now open if it is
		// still being analyzed.
		if d := a.State.CurrentIssue; d != nil && a.State.viewingIssue(d.ID) {
			if _, analyzing := d.State.(api.StateAnalyzing); analyzing {
				a.StartAnalysisStream(d.ID)
			}
		}
		return
	}
	if m.Err == nil {
		a.State.ClearError(ErrStream)
		return
	}
	a.State.AppendLine(IconError, "Stream error: "+m.Err.Error(), StyleError)
	a.State.SetError(ErrStream, "Stream error: "+m.Err.Error())
}

func (a *App) handleAction(m ActionComplete) {
	a.State.endLoading()
	req := m.Request
	viewing := a.State.viewingIssue(req.IssueID)

	if m.Err != nil {
		a.State.SetError(ErrAction, m.Err.Error())
		if req.Op == OpAnalyze {
			if !req.Headless && viewing && a.State.Screen == ScreenAnalysis {
				cause := errors.Unwrap(m.Err)
				if cause == nil {
					cause = m.Err
				}
				a.State.AppendLine(IconError, "Failed: "+cause.Error(), StyleError)
			}
			return
		}
	} else {
		a.State.ClearError(ErrAction)
	}

	switch {
	case req.Op == OpAnalyze && req.Headless:
		a.StartRefresh()
	case req.Op == OpAnalyze:
		if viewing {
			a.StartAnalysisStream(req.IssueID)
			a.reloadDetail()
		}
	default:
		if viewing {
			a.reloadDetail()
		}
	}
}
