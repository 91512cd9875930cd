package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	domainmocks "tagrade.dev/pkg/tagrade/internal/domain/mocks"
)

// newTestRootCmd builds a fresh root with persistent flags bound to viper and
// the given subcommands attached.
func newTestRootCmd(t *testing.T, subcommands ...*cobra.Command) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	cmd := newRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(subcommands...)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, out
}

// useMockWorkflow swaps the package workflow for a mock until the test ends.
func useMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow
}

func testLogArgs(t *testing.T) []string {
	return []string{"--" + logFileFlagName, filepath.Join(t.TempDir(), "tagrade.log")}
}
