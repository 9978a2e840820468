package app

import (
	"strings"

	"github.com/newhook/glass/internal/api"
)

const (
	// flushThreshold is the buffered text length, in bytes, that forces a flush.
	flushThreshold = 200
	// maxToolOutputLines caps how many lines of tool output are shown.
	maxToolOutputLines = 5
)

// Reduce applies one analysis event to the state. It returns true when the
// event moved the UI to the proposal screen.
func Reduce(s *State, event api.AnalysisEvent) bool {
	switch e := event.(type) {
	case api.EventBackfill:
		navigated := false
		for _, inner := range e.Events {
			if Reduce(s, inner) {
				navigated = true
			}
		}
		return navigated

	case api.EventThinking:
		s.AppendLine(IconThinking, "Thinking...", StyleThinking)

	case api.EventTextDelta:
		s.TextBuffer += e.Delta
		if strings.Contains(s.TextBuffer, "\n") || len(s.TextBuffer) > flushThreshold {
			FlushText(s)
		}

	case api.EventToolStart:
		FlushText(s)
		text := e.Tool + " " + api.FormatToolArgs(e.Args)
		for i, line := range WordWrap(text, s.WrapWidth()) {
			icon := IconBlank
			if i == 0 {
				icon = IconTool
			}
			s.AppendLine(icon, line, StyleTool)
		}

	case api.EventToolOutput:
		shown := 0
		for _, line := range strings.Split(e.Output, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if shown == maxToolOutputLines {
				break
			}
			shown++
			for _, wrapped := range WordWrap(line, s.WrapWidth()) {
				s.AppendLine(IconBlank, wrapped, StyleDimmed)
			}
		}

	case api.EventToolEnd:
		if e.IsError {
			s.AppendLine(IconBlank, "(error)", StyleError)
		}

	case api.EventComplete:
		FlushText(s)
		s.AppendLine(IconSuccess, "Analysis complete", StyleSuccess)
		s.IsStreamingAnalysis = false
		if s.CurrentIssue != nil {
			if analyzing, ok := s.CurrentIssue.State.(api.StateAnalyzing); ok {
				s.CurrentIssue.State = api.StatePendingApproval{
					AnalysisSessionID: analyzing.AnalysisSessionID,
					Proposal:          e.Proposal,
				}
			}
		}
		s.Screen = ScreenProposal
		s.ProposalScroll = 0
		return true

	case api.EventError:
		FlushText(s)
		s.AppendLine(IconError, e.Message, StyleError)
		s.IsStreamingAnalysis = false
	}
	return false
}

// FlushText moves buffered narrative text into the activity log, one wrapped
// Normal line per row, skipping blank lines.
func FlushText(s *State) {
	if s.TextBuffer == "" {
		return
	}
	text := strings.TrimSpace(s.TextBuffer)
	s.TextBuffer = ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, wrapped := range WordWrap(line, s.WrapWidth()) {
			s.AppendLine(IconBlank, wrapped, StyleNormal)
		}
	}
}
