// Package escape hands the terminal to the agent's interactive program so the
// user can continue a session by hand.
package escape

import (
	"context"
	"os/exec"
	"strings"
)

// Command builds the interactive invocation for a session file:
// "<program> --session <path>". program may carry extra arguments separated
// by spaces. The caller is expected to run it attached to the terminal, e.g.
// through tea.ExecProcess.
func Command(ctx context.Context, program, sessionPath string) *exec.Cmd {
	fields := strings.Fields(program)
	if len(fields) == 0 {
		fields = []string{"pi"}
	}
	args := append(fields[1:], "--session", sessionPath)
	return exec.CommandContext(ctx, fields[0], args...)
}
