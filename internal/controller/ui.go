// Package controller provides the operator-facing prompts and displays used
// during a grading session.
package controller

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

// ExitOption is the menu key that ends the session.
const ExitOption = "x"

// ErrPromptAborted is returned when the operator cancels a prompt (Ctrl+C/Esc).
var ErrPromptAborted = errors.New("prompt aborted")

// UI defines the interactive surface the grading workflow talks to.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// Menu shows numbered options and returns "1".."n" or ExitOption.
	Menu(ctx context.Context, title string, options []string) (string, error)
	// Ask reads one line of free text.
	Ask(ctx context.Context, question string) (string, error)
	// Confirm blocks until the operator answers yes or no.
	Confirm(ctx context.Context, question string) (bool, error)
	// WaitForEnter blocks until the operator presses enter.
	WaitForEnter(ctx context.Context, message string) error
	Printf(format string, args ...interface{})
	DisplayDiscrepancy(ctx context.Context, stated, computed int)
	DisplayDiff(ctx context.Context, diff string)
	DisplayError(ctx context.Context, err error)
	DisplayStatus(ctx context.Context, rows []m.StatusRow, format StatusFormat) error
}

// NewUI picks the TUI for terminals and SimpleUI for pipes and files.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
