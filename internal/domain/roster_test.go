package domain

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"tagrade.dev/pkg/tagrade/internal/adapter"
	adaptermocks "tagrade.dev/pkg/tagrade/internal/adapter/mocks"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

func newTestRoster(t *testing.T, ui *scriptedUI, section string, identity adapter.IdentityProvider) *Roster {
	t.Helper()

	if identity == nil {
		identity = newIdentityMock(t, "ta1")
	}

	roster, err := DiscoverRoster(context.Background(), RosterDeps{
		FS:          newLocalFS(),
		Submissions: newTestSubmissions(ui, newEditorMock(t)),
		UI:          ui,
		Identity:    identity,
	}, m.Path(section), 2)
	require.NoError(t, err)

	return roster
}

func TestDiscoverRoster_SectionNotFound(t *testing.T) {
	root := t.TempDir()
	notDir := filepath.Join(root, "Section002")
	require.NoError(t, os.WriteFile(notDir, []byte("x"), 0o644))

	for name, section := range map[string]string{
		"missing":       filepath.Join(root, "Section001"),
		"not directory": notDir,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DiscoverRoster(context.Background(), RosterDeps{
				FS:          newLocalFS(),
				Submissions: newTestSubmissions(&scriptedUI{}, newEditorMock(t)),
			}, m.Path(section), 1)
			require.ErrorIs(t, err, ErrSectionNotFound)
		})
	}
}

func TestDiscoverRoster(t *testing.T) {
	section := t.TempDir()
	writeSubmission(t, section, "carol", 1, submissionFixture{"lab01.score": balancedSheet})
	writeSubmission(t, section, "alice", 1, submissionFixture{"lab01.score": balancedSheet})
	writeSubmission(t, section, "alice", 2, submissionFixture{"main.py": ""})
	require.NoError(t, os.MkdirAll(filepath.Join(section, "alice", "old"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(section, "bob"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(section, ".snapshot", "1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(section, "README"), []byte("roster"), 0o644))

	roster := newTestRoster(t, &scriptedUI{}, section, nil)

	assert.Equal(t, m.Path(section), roster.Section())

	var netIDs []string
	for _, student := range roster.Students() {
		netIDs = append(netIDs, student.NetID)
	}

	assert.Equal(t, []string{"alice", "bob", "carol"}, netIDs)

	alice, err := roster.Student("alice")
	require.NoError(t, err)
	assert.Len(t, alice.Submissions, 2)
	assert.Equal(t, m.Path(section).Join("alice"), alice.Location)

	sub, ok := alice.Submission(2)
	require.True(t, ok)
	assert.Equal(t, 2, sub.Project)
	assert.False(t, sub.HasScoresheet())

	bob, err := roster.Student("bob")
	require.NoError(t, err)
	assert.Empty(t, bob.Submissions)
}

func TestRoster_Student_NotFound(t *testing.T) {
	section := t.TempDir()
	writeSubmission(t, section, "alice", 1, submissionFixture{"lab01.score": balancedSheet})

	roster := newTestRoster(t, &scriptedUI{}, section, nil)

	for _, netID := range []string{"nobody", "Alice", "alic", ""} {
		_, err := roster.Student(netID)
		assert.ErrorIs(t, err, ErrStudentNotFound, netID)
	}
}

func TestRoster_GradeAll(t *testing.T) {
	tests := []struct {
		name        string
		skipGraded  bool
		confirms    []bool
		wantSummary GradeSummary
		wantOutput  string
	}{
		{
			name:        "every submission",
			confirms:    []bool{true, true},
			wantSummary: GradeSummary{Graded: 2, Failed: 1},
			wantOutput:  "Project 3: 2 graded, 0 skipped, 1 failed",
		},
		{
			name:        "ungraded only",
			skipGraded:  true,
			confirms:    []bool{true},
			wantSummary: GradeSummary{Graded: 1, Failed: 1},
			wantOutput:  "Project 3: 1 graded, 0 skipped, 1 failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section := t.TempDir()
			writeSubmission(t, section, "alice", 3, submissionFixture{"lab03.score": balancedSheet, ".graded": "ta0"})
			writeSubmission(t, section, "bob", 3, submissionFixture{"lab03.score": balancedSheet})
			writeSubmission(t, section, "carol", 3, submissionFixture{"main.py": ""})
			writeSubmission(t, section, "dave", 1, submissionFixture{"lab01.score": balancedSheet})

			ui := &scriptedUI{confirms: tt.confirms}
			roster := newTestRoster(t, ui, section, nil)

			summary, err := roster.GradeAll(context.Background(), 3, tt.skipGraded)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSummary, summary)
			assert.Contains(t, ui.out.String(), tt.wantOutput)
			assert.Empty(t, ui.confirms)

			require.Len(t, ui.errs, 1)
			assert.ErrorIs(t, ui.errs[0], ErrNoScoresheet)
			assert.Contains(t, ui.errs[0].Error(), "carol")

			bob, err := roster.Student("bob")
			require.NoError(t, err)
			assert.Equal(t, "ta1", readFile(t, bob.Location.Join("3", GradedMarkerName)))

			wantAlice := "ta1"
			if tt.skipGraded {
				wantAlice = "ta0"
			}

			alice, err := roster.Student("alice")
			require.NoError(t, err)
			assert.Equal(t, wantAlice, readFile(t, alice.Location.Join("3", GradedMarkerName)))

			dave, err := roster.Student("dave")
			require.NoError(t, err)
			_, err = os.Stat(string(dave.Location.Join("1", GradedMarkerName)))
			assert.True(t, errors.Is(err, os.ErrNotExist))
		})
	}
}

func TestRoster_GradeAll_DeclinedRecordIsSkipped(t *testing.T) {
	section := t.TempDir()
	dir := writeSubmission(t, section, "alice", 3, submissionFixture{"lab03.score": unbalancedSheet})

	ui := &scriptedUI{confirms: []bool{false}}
	roster := newTestRoster(t, ui, section, nil)

	summary, err := roster.GradeAll(context.Background(), 3, false)
	require.NoError(t, err)
	assert.Equal(t, GradeSummary{Skipped: 1}, summary)
	assert.Contains(t, ui.out.String(), "Left alice ungraded")
	assert.Equal(t, unbalancedSheet, readFile(t, dir.Join("lab03.score")))

	_, err = os.Stat(string(dir.Join(GradedMarkerName)))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRoster_GradeAll_ClosedInputEndsBatch(t *testing.T) {
	section := t.TempDir()
	writeSubmission(t, section, "alice", 3, submissionFixture{"lab03.score": balancedSheet})
	writeSubmission(t, section, "bob", 3, submissionFixture{"lab03.score": balancedSheet})

	ui := &scriptedUI{}
	roster := newTestRoster(t, ui, section, nil)

	summary, err := roster.GradeAll(context.Background(), 3, false)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, GradeSummary{}, summary)
	assert.Len(t, ui.questions, 1)
	assert.NotContains(t, ui.out.String(), "Project 3:")
}

func TestRoster_GradeAll_CancelledContext(t *testing.T) {
	section := t.TempDir()
	writeSubmission(t, section, "alice", 3, submissionFixture{"main.py": ""})

	roster := newTestRoster(t, &scriptedUI{}, section, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := roster.GradeAll(ctx, 3, false)
	require.ErrorIs(t, err, ErrNoScoresheet)
}

func TestRoster_GradeOne(t *testing.T) {
	section := t.TempDir()
	dir := writeSubmission(t, section, "alice", 3, submissionFixture{"lab03.score": unbalancedSheet, "main.py": ""})

	ui := &scriptedUI{confirms: []bool{true, true}}
	roster := newTestRoster(t, ui, section, nil)

	require.NoError(t, roster.GradeOne(context.Background(), "alice", 3))

	assert.Equal(t, "Score: __7__\nItem1 __3__\nItem2 __4__\n", readFile(t, dir.Join("lab03.score")))
	assert.Equal(t, "ta1", readFile(t, dir.Join(GradedMarkerName)))
	assert.Equal(t, [][2]int{{5, 7}}, ui.discrepancies)
	assert.Len(t, ui.diffs, 1)
	assert.Equal(t, 1, ui.enters)
	assert.Equal(t, []string{"Record the grade for alice now?", "Would you like me to fix that?"}, ui.questions)
	assert.Contains(t, ui.out.String(), "Recorded 7 for alice\nGraded by ta1\n")

	alice, err := roster.Student("alice")
	require.NoError(t, err)

	sub, ok := alice.Submission(3)
	require.True(t, ok)
	assert.True(t, sub.Graded)
	assert.Equal(t, "ta1", sub.GradedBy)
}

func TestRoster_GradeOne_Errors(t *testing.T) {
	section := t.TempDir()
	writeSubmission(t, section, "alice", 3, submissionFixture{"lab03.score": balancedSheet})
	writeSubmission(t, section, "bob", 3, submissionFixture{})

	ui := &scriptedUI{}
	roster := newTestRoster(t, ui, section, nil)
	ctx := context.Background()

	err := roster.GradeOne(ctx, "nobody", 3)
	require.ErrorIs(t, err, ErrStudentNotFound)

	err = roster.GradeOne(ctx, "alice", 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alice has no submission for project 9")

	err = roster.GradeOne(ctx, "bob", 3)
	require.ErrorIs(t, err, ErrNoScoresheet)
	assert.Zero(t, ui.enters)
}

func TestRoster_GradeOne_IdentityFailureLeavesUngraded(t *testing.T) {
	section := t.TempDir()
	dir := writeSubmission(t, section, "alice", 3, submissionFixture{"lab03.score": balancedSheet})

	identity := adaptermocks.NewMockIdentityProvider(t)
	identity.On("CurrentUser", mock.Anything).Return("", errors.New("no user")).Once()

	roster := newTestRoster(t, &scriptedUI{confirms: []bool{true}}, section, identity)

	err := roster.GradeOne(context.Background(), "alice", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identify grader")

	_, err = os.Stat(string(dir.Join(GradedMarkerName)))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRoster_Status(t *testing.T) {
	section := t.TempDir()
	writeSubmission(t, section, "alice", 2, submissionFixture{"lab02.score": balancedSheet, "main.py": "", ".graded": "ta0\n"})
	writeSubmission(t, section, "bob", 2, submissionFixture{"main.py": ""})
	writeSubmission(t, section, "carol", 2, submissionFixture{"a.score": balancedSheet, "b.score": balancedSheet})
	writeSubmission(t, section, "dave", 2, submissionFixture{"lab02.score": "nothing here\n"})
	writeSubmission(t, section, "erin", 1, submissionFixture{"lab01.score": balancedSheet})

	roster := newTestRoster(t, &scriptedUI{}, section, nil)

	five := 5
	assert.Equal(t, []m.StatusRow{
		{NetID: "alice", Project: 2, Submitted: true, Graded: true, GradedBy: "ta0", Scoresheet: m.ScoresheetOK, StatedTotal: &five, SourceFiles: 1},
		{NetID: "bob", Project: 2, Submitted: true, Scoresheet: m.ScoresheetMissing, SourceFiles: 1},
		{NetID: "carol", Project: 2, Submitted: true, Scoresheet: m.ScoresheetAmbiguous},
		{NetID: "dave", Project: 2, Submitted: true, Scoresheet: m.ScoresheetMalformed},
		{NetID: "erin", Project: 2, Scoresheet: m.ScoresheetNone},
	}, roster.Status(context.Background(), 2))
}
