package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	s := NewState()
	require.Equal(t, ScreenList, s.Screen)
	require.Equal(t, 80, s.TerminalWidth)
	require.Equal(t, 24, s.TerminalHeight)
	require.False(t, s.IsLoading())
}

func TestHalfPage(t *testing.T) {
	s := NewState()
	require.Equal(t, 9, s.HalfPage())
	s.SetTerminalSize(80, 7)
	require.Equal(t, 1, s.HalfPage())
	s.SetTerminalSize(80, 2)
	require.Equal(t, 1, s.HalfPage())
}

func TestWrapWidth(t *testing.T) {
	s := NewState()
	require.Equal(t, 74, s.WrapWidth())
	s.SetTerminalSize(30, 24)
	require.Equal(t, 40, s.WrapWidth())
}

func TestClearErrorMatchesKind(t *testing.T) {
	s := NewState()
	s.SetError(ErrList, "list failed")

	s.ClearError(ErrDetail)
	require.Equal(t, "list failed", s.Error)

	s.ClearError(ErrList)
	require.Empty(t, s.Error)
	require.Equal(t, ErrNone, s.ErrorKind())
}

func TestLoadingCounter(t *testing.T) {
	s := NewState()
	s.beginLoading()
	s.beginLoading()
	s.endLoading()
	require.True(t, s.IsLoading())
	s.endLoading()
	s.endLoading()
	require.False(t, s.IsLoading())
}

func TestScreenString(t *testing.T) {
	require.Equal(t, "proposal", ScreenProposal.String())
	require.Equal(t, "unknown", Screen(42).String())
}
