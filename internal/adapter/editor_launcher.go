package adapter

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"

	m "tagrade.dev/pkg/tagrade/internal/model"
)

// DefaultEditor is the visual editor used when none is configured.
const DefaultEditor = "gedit"

// EditorLauncher opens files in an external editor. Launches are
// fire-and-forget: callers get no completion signal and no exit status.
type EditorLauncher interface {
	// Open starts one editor process per path.
	Open(ctx context.Context, paths []m.Path)

	// Name returns the editor command shown to the operator.
	Name() string
}

// LocalEditorLauncher starts editor processes with os/exec.
type LocalEditorLauncher struct {
	command []string
	start   func(cmd *exec.Cmd) error
}

// NewLocalEditorLauncher builds a launcher for editor, which may carry extra
// arguments (e.g. "code --new-window").
func NewLocalEditorLauncher(editor string) *LocalEditorLauncher {
	command := strings.Fields(editor)
	if len(command) == 0 {
		command = []string{DefaultEditor}
	}

	return &LocalEditorLauncher{
		command: command,
		start:   startDetached,
	}
}

// Name returns the configured editor command.
func (l *LocalEditorLauncher) Name() string {
	return strings.Join(l.command, " ")
}

// Open launches the editor once for every path. Processes outlive the call
// and are never cancelled.
func (l *LocalEditorLauncher) Open(ctx context.Context, paths []m.Path) {
	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}

		args := append(append([]string{}, l.command[1:]...), string(path))

		// #nosec G204 - editor comes from operator configuration
		cmd := exec.Command(l.command[0], args...)
		if err := l.start(cmd); err != nil {
			slog.Warn("Failed to launch editor", "editor", l.command[0], "path", path, "error", err)
			continue
		}

		slog.Debug("Launched editor", "editor", l.command[0], "path", path)
	}
}

// startDetached starts cmd with its output discarded and reaps it in the
// background so finished editors do not linger as zombies.
func startDetached(cmd *exec.Cmd) error {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}
