package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/newhook/glass/internal/api"
	"github.com/newhook/glass/internal/app"
)

// wheelStep is how far one mouse wheel notch scrolls.
const wheelStep = 3

// keyAction resolves a key press on the current screen.
func keyAction(s *app.State, msg tea.KeyMsg) app.Action {
	key := msg.String()
	if key == "ctrl+c" {
		return app.Do(app.ActQuit)
	}

	switch s.Screen {
	case app.ScreenList:
		return listKey(s, key)
	case app.ScreenDetail:
		return detailKey(s, key)
	case app.ScreenAnalysis:
		return analysisKey(s, key)
	case app.ScreenProposal:
		return proposalKey(s, key)
	}
	return app.Do(app.ActNone)
}

// scrollKey maps the movement keys shared by every screen onto kind.
func scrollKey(s *app.State, key string, kind app.ActionKind) (app.Action, bool) {
	switch key {
	case "j", "down":
		return app.Action{Kind: kind, N: 1}, true
	case "k", "up":
		return app.Action{Kind: kind, N: -1}, true
	case "ctrl+d":
		return app.Action{Kind: kind, N: s.HalfPage()}, true
	case "ctrl+u":
		return app.Action{Kind: kind, N: -s.HalfPage()}, true
	}
	return app.Action{}, false
}

func listKey(s *app.State, key string) app.Action {
	if a, ok := scrollKey(s, key, app.ActMoveSelection); ok {
		return a
	}
	switch key {
	case "q":
		return app.Do(app.ActQuit)
	case "g":
		return app.Do(app.ActJumpToTop)
	case "G":
		return app.Do(app.ActJumpToBottom)
	case "r":
		return app.Do(app.ActRefresh)
	case "a":
		return app.Do(app.ActAnalyzeFromList)
	case "enter":
		return app.Do(app.ActOpenSelected)
	}
	return app.Do(app.ActNone)
}

func detailKey(s *app.State, key string) app.Action {
	if a, ok := scrollKey(s, key, app.ActScrollDetail); ok {
		return a
	}
	switch key {
	case "q", "esc":
		return app.Do(app.ActBackToList)
	case "r":
		return app.Do(app.ActRefreshDetail)
	case "enter":
		if s.CurrentIssue == nil {
			break
		}
		switch s.CurrentIssue.State.(type) {
		case api.StatePendingApproval:
			return app.Do(app.ActOpenProposal)
		case api.StateAnalyzing:
			return app.Do(app.ActOpenAnalysis)
		}
	case "a":
		// Let analyze through before the detail loads so the user is told to wait.
		if s.CurrentIssue == nil {
			return app.Do(app.ActAnalyzeFromDetail)
		}
		return gated(s, app.ActAnalyzeFromDetail)
	case "i":
		return gated(s, app.ActInteractive)
	case "d":
		return gated(s, app.ActCompleteReview)
	case "R":
		return gated(s, app.ActRetry)
	}
	return app.Do(app.ActNone)
}

// gated returns kind only when the open issue's state offers it.
func gated(s *app.State, kind app.ActionKind) app.Action {
	if s.CurrentIssue == nil || !app.Allows(s.CurrentIssue.State, kind) {
		return app.Do(app.ActNone)
	}
	return app.Do(kind)
}

func analysisKey(s *app.State, key string) app.Action {
	if a, ok := scrollKey(s, key, app.ActScrollAnalysis); ok {
		return a
	}
	switch key {
	case "q", "esc":
		return app.Do(app.ActBackToDetail)
	}
	return app.Do(app.ActNone)
}

func proposalKey(s *app.State, key string) app.Action {
	if a, ok := scrollKey(s, key, app.ActScrollProposal); ok {
		return a
	}
	switch key {
	case "q", "esc":
		return app.Do(app.ActBackFromProposal)
	}
	if s.CurrentIssue == nil {
		return app.Do(app.ActNone)
	}
	for _, a := range app.ProposalActions(s.CurrentIssue.State) {
		if a.Key == key {
			return app.Do(a.Kind)
		}
	}
	return app.Do(app.ActNone)
}

// wheelAction maps a mouse wheel notch to the current screen's scroll.
func wheelAction(s *app.State, delta int) app.Action {
	switch s.Screen {
	case app.ScreenList:
		return app.Action{Kind: app.ActMoveSelection, N: delta}
	case app.ScreenDetail:
		return app.Action{Kind: app.ActScrollDetail, N: delta * wheelStep}
	case app.ScreenAnalysis:
		return app.Action{Kind: app.ActScrollAnalysis, N: delta * wheelStep}
	case app.ScreenProposal:
		return app.Action{Kind: app.ActScrollProposal, N: delta * wheelStep}
	}
	return app.Do(app.ActNone)
}
