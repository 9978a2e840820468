package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/newhook/glass/internal/api"
	"github.com/newhook/glass/internal/app"
	"github.com/newhook/glass/internal/signal"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewDefaultsTickInterval(t *testing.T) {
	m, _ := newTestModel()
	require.Equal(t, DefaultTickInterval, m.opts.TickInterval)
}

func TestTickPollsBackground(t *testing.T) {
	m, bg := newTestModel()
	bg.queue = []app.Message{app.ListRefreshComplete{
		Response: &api.ListIssuesResponse{Issues: []api.Issue{{ID: "a"}, {ID: "b"}}},
	}}

	m, cmd := update(t, m, tickMsg(time.Now()))
	require.NotNil(t, cmd)
	require.Len(t, m.app.State.Issues, 2)
	require.Empty(t, bg.queue)
}

func TestTickQuitsWhenContextDone(t *testing.T) {
	m, _ := newTestModel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.ctx = ctx

	_, cmd := update(t, m, tickMsg(time.Now()))
	require.True(t, isQuit(cmd))
}

func TestWindowSize(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Equal(t, 120, m.app.State.TerminalWidth)
	require.Equal(t, 40, m.app.State.TerminalHeight)
}

func TestKeysDriveTheApp(t *testing.T) {
	m, bg := newTestModel(api.Issue{ID: "a"}, api.Issue{ID: "b"})

	m, cmd := update(t, m, runeKey("j"))
	require.Nil(t, cmd)
	require.Equal(t, 1, m.app.State.SelectedIndex)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, app.ScreenDetail, m.app.State.Screen)
	require.Contains(t, bg.spawned, "detail-load:b")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, app.ScreenList, m.app.State.Screen)

	_, cmd = update(t, m, runeKey("q"))
	require.True(t, isQuit(cmd))
}

func TestMouseWheelMovesSelection(t *testing.T) {
	m, _ := newTestModel(api.Issue{ID: "a"}, api.Issue{ID: "b"})
	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	require.Equal(t, 1, m.app.State.SelectedIndex)
	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	require.Equal(t, 0, m.app.State.SelectedIndex)
}

func TestHandoff(t *testing.T) {
	m, bg := newTestModel(api.Issue{ID: "a"})
	m.app.OpenSelected()
	bg.queue = []app.Message{
		app.DetailRefreshComplete{IssueID: "a", Cached: true, Detail: &api.IssueDetail{ID: "a", State: api.StateInProgress{}}},
	}
	m, _ = update(t, m, tickMsg(time.Now()))

	m, _ = update(t, m, runeKey("i"))
	require.Equal(t, []string{"a"}, bg.sessions)

	bg.queue = []app.Message{app.SessionResolved{IssueID: "a", Path: "/tmp/session.jsonl"}}
	m, cmd := update(t, m, tickMsg(time.Now()))
	require.NotNil(t, cmd)
	require.True(t, signal.Held())

	m, _ = update(t, m, handoffDoneMsg{err: errors.New("exit status 1")})
	require.False(t, signal.Held())
	require.Equal(t, "Interactive session failed: exit status 1", m.app.State.Error)
}

func TestViewRendersCurrentScreen(t *testing.T) {
	m, _ := newTestModel(api.Issue{ID: "a", Title: "Boom", Status: api.StatusPending})
	require.Contains(t, plain(m.View()), "Boom")

	m.app.State.Screen = app.ScreenProposal
	require.Contains(t, plain(m.View()), "No proposal available")
}
