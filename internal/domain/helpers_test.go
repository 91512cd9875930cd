package domain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"tagrade.dev/pkg/tagrade/internal/adapter"
	adaptermocks "tagrade.dev/pkg/tagrade/internal/adapter/mocks"
	"tagrade.dev/pkg/tagrade/internal/controller"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

// scriptedUI answers prompts from queues. An exhausted queue behaves like a
// closed terminal.
type scriptedUI struct {
	menus    []string
	asks     []string
	confirms []bool

	enters        int
	questions     []string
	discrepancies [][2]int
	diffs         []string
	errs          []error
	status        []m.StatusRow
	out           bytes.Buffer
}

var _ controller.UI = (*scriptedUI)(nil)

func (u *scriptedUI) Menu(_ context.Context, _ string, _ []string) (string, error) {
	if len(u.menus) == 0 {
		return controller.ExitOption, nil
	}

	choice := u.menus[0]
	u.menus = u.menus[1:]

	return choice, nil
}

func (u *scriptedUI) Ask(_ context.Context, question string) (string, error) {
	u.questions = append(u.questions, question)
	if len(u.asks) == 0 {
		return "", io.EOF
	}

	answer := u.asks[0]
	u.asks = u.asks[1:]

	return answer, nil
}

func (u *scriptedUI) Confirm(_ context.Context, question string) (bool, error) {
	u.questions = append(u.questions, question)
	if len(u.confirms) == 0 {
		return false, io.EOF
	}

	answer := u.confirms[0]
	u.confirms = u.confirms[1:]

	return answer, nil
}

func (u *scriptedUI) WaitForEnter(_ context.Context, message string) error {
	u.enters++
	u.out.WriteString(message + "\n")

	return nil
}

func (u *scriptedUI) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&u.out, format, args...)
}

func (u *scriptedUI) DisplayDiscrepancy(_ context.Context, stated, computed int) {
	u.discrepancies = append(u.discrepancies, [2]int{stated, computed})
}

func (u *scriptedUI) DisplayDiff(_ context.Context, diff string) {
	u.diffs = append(u.diffs, diff)
}

func (u *scriptedUI) DisplayError(_ context.Context, err error) {
	u.errs = append(u.errs, err)
}

func (u *scriptedUI) DisplayStatus(_ context.Context, rows []m.StatusRow, _ controller.StatusFormat) error {
	u.status = rows
	return nil
}

// submissionFixture describes the files of one project directory.
type submissionFixture map[string]string

func writeSubmission(t *testing.T, section, netID string, project int, files submissionFixture) m.Path {
	t.Helper()

	dir := filepath.Join(section, netID, fmt.Sprintf("%d", project))
	require.NoError(t, os.MkdirAll(dir, 0o755))

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return m.Path(dir)
}

func readFile(t *testing.T, path m.Path) string {
	t.Helper()

	content, err := os.ReadFile(string(path))
	require.NoError(t, err)

	return string(content)
}

func newEditorMock(t *testing.T) *adaptermocks.MockEditorLauncher {
	editor := adaptermocks.NewMockEditorLauncher(t)
	editor.On("Open", mock.Anything, mock.Anything).Return().Maybe()
	editor.On("Name").Return("gedit").Maybe()

	return editor
}

func newIdentityMock(t *testing.T, name string) *adaptermocks.MockIdentityProvider {
	identity := adaptermocks.NewMockIdentityProvider(t)
	identity.On("CurrentUser", mock.Anything).Return(name, nil).Maybe()

	return identity
}

func newTestSubmissions(ui controller.UI, editor adapter.EditorLauncher) Submissions {
	return NewSubmissions(adapter.NewLocalSubmissionFSAdapter(), editor, ui, "")
}

const (
	balancedSheet   = "Score: __05__\nItem1 __3__\nItem2 __2__\n"
	unbalancedSheet = "Score: __05__\nItem1 __3__\nItem2 __4__\n"
)

func newLocalFS() adapter.SubmissionFSAdapter {
	return adapter.NewLocalSubmissionFSAdapter()
}
