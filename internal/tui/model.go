// Package tui is the interactive control loop: a bubbletea program that polls
// background results on a tick, renders the application state and turns
// input into actions.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/newhook/glass/internal/app"
	"github.com/newhook/glass/internal/escape"
	"github.com/newhook/glass/internal/logging"
	"github.com/newhook/glass/internal/signal"
)

// DefaultTickInterval is how often background results are drained when no
// input arrives.
const DefaultTickInterval = 100 * time.Millisecond

// Options configures the control loop.
type Options struct {
	TickInterval time.Duration
	Mouse        bool
	// EscapeCommand is the interactive program sessions are handed to.
	EscapeCommand string
}

type tickMsg time.Time

// handoffDoneMsg reports that the interactive program exited.
type handoffDoneMsg struct {
	err error
}

// Model adapts app.App to bubbletea.
type Model struct {
	ctx      context.Context
	app      *app.App
	opts     Options
	spinner  spinner.Model
	proposal *markdownCache
	panes    panes
}

// panes holds the scrolling body of each screen.
type panes struct {
	list     *scrollPanel
	detail   *scrollPanel
	analysis *scrollPanel
	proposal *scrollPanel
}

// New creates the model around a.
func New(ctx context.Context, a *app.App, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return Model{
		ctx:      ctx,
		app:      a,
		opts:     opts,
		spinner:  s,
		proposal: &markdownCache{},
		panes: panes{
			list:     newScrollPanel(),
			detail:   newScrollPanel(),
			analysis: newScrollPanel(),
			proposal: newScrollPanel(),
		},
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.ctx.Err() != nil {
			return m, tea.Quit
		}
		m.app.PollBackground()
		if path, ok := m.app.TakeHandoff(); ok {
			return m, tea.Batch(m.tick(), m.handoff(path))
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.app.State.SetTerminalSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.execute(keyAction(m.app.State, msg))

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case handoffDoneMsg:
		signal.Release()
		if msg.err != nil {
			logging.Warn("interactive session failed", "error", msg.err)
		}
		m.app.ResumeAfterHandoff(msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) execute(action app.Action) (tea.Model, tea.Cmd) {
	m.app.Execute(action)
	if m.app.State.ShouldQuit {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.execute(wheelAction(m.app.State, -1))
	case tea.MouseButtonWheelDown:
		return m.execute(wheelAction(m.app.State, 1))
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || m.app.State.Screen != app.ScreenList {
			return m, nil
		}
		for i := range m.app.State.Issues {
			if !zone.Get(rowZoneID(i)).InBounds(msg) {
				continue
			}
			// A click on the highlighted row opens it.
			if i == m.app.State.SelectedIndex {
				return m.execute(app.Do(app.ActOpenSelected))
			}
			return m.execute(app.Action{Kind: app.ActSelectIndex, N: i})
		}
	}
	return m, nil
}

// handoff suspends the UI and runs the interactive program on the session.
// Signals are held so Ctrl+C reaches the program instead of cancelling glass.
func (m Model) handoff(sessionPath string) tea.Cmd {
	logging.Info("handing off to interactive session", "command", m.opts.EscapeCommand, "session", sessionPath)
	signal.Hold()
	c := escape.Command(m.ctx, m.opts.EscapeCommand, sessionPath)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return handoffDoneMsg{err: err}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return zone.Scan(m.view())
}

// Run starts the application and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, a *app.App, opts Options) error {
	zone.NewGlobal()
	defer zone.Close()

	a.Start()
	model := New(ctx, a, opts)

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, progOpts...)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
