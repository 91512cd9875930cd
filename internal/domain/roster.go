package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"tagrade.dev/pkg/tagrade/internal/adapter"
	"tagrade.dev/pkg/tagrade/internal/controller"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

// DefaultDiscoverParallel bounds concurrent student directory scans.
const DefaultDiscoverParallel = 4

// RosterDeps are the collaborators a Roster grades with.
type RosterDeps struct {
	FS          adapter.SubmissionFSAdapter
	Submissions Submissions
	UI          controller.UI
	Identity    adapter.IdentityProvider
	Logger      *slog.Logger
}

// Roster is the fixed set of students found in one section directory, kept
// in directory order.
type Roster struct {
	RosterDeps

	section  m.Path
	students []*m.Student
	byNetID  map[string]*m.Student
}

// GradeSummary counts the outcomes of a GradeAll run.
type GradeSummary struct {
	Graded  int
	Skipped int
	Failed  int
}

// DiscoverRoster scans sectionDir: each subdirectory is a student, each of
// their numeric subdirectories a project submission. Students are scanned
// concurrently, up to parallel at a time.
func DiscoverRoster(ctx context.Context, deps RosterDeps, sectionDir m.Path, parallel int) (*Roster, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	info, err := deps.FS.FileInfo(ctx, sectionDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionDir)
		}

		return nil, fmt.Errorf("stat section %s: %w", sectionDir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSectionNotFound, sectionDir)
	}

	entries, err := deps.FS.ReadDir(ctx, sectionDir)
	if err != nil {
		return nil, fmt.Errorf("read section %s: %w", sectionDir, err)
	}

	var netIDs []string

	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			netIDs = append(netIDs, entry.Name())
		}
	}

	students := make([]*m.Student, len(netIDs))

	group, groupCtx := errgroup.WithContext(ctx)
	if parallel <= 0 {
		parallel = DefaultDiscoverParallel
	}

	group.SetLimit(parallel)

	for i, netID := range netIDs {
		group.Go(func() error {
			student, err := discoverStudent(groupCtx, deps, netID, deps.FS.JoinPath(groupCtx, string(sectionDir), netID))
			if err != nil {
				return err
			}

			students[i] = student

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	roster := &Roster{
		RosterDeps: deps,
		section:    sectionDir,
		students:   students,
		byNetID:    make(map[string]*m.Student, len(students)),
	}

	for _, student := range students {
		roster.byNetID[student.NetID] = student
	}

	deps.Logger.Info("Discovered roster", "section", sectionDir, "students", len(students))

	return roster, nil
}

func discoverStudent(ctx context.Context, deps RosterDeps, netID string, dir m.Path) (*m.Student, error) {
	entries, err := deps.FS.ReadDir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("read student %s: %w", dir, err)
	}

	student := &m.Student{
		NetID:       netID,
		Location:    dir,
		Submissions: make(map[int]*m.Submission),
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		if _, err := strconv.Atoi(entry.Name()); err != nil {
			deps.Logger.Debug("Skipping non-project directory", "student", netID, "dir", entry.Name())
			continue
		}

		sub, err := deps.Submissions.Discover(ctx, netID, deps.FS.JoinPath(ctx, string(dir), entry.Name()))
		if err != nil {
			return nil, err
		}

		student.Submissions[sub.Project] = sub
	}

	return student, nil
}

// Section returns the directory the roster was built from.
func (r *Roster) Section() m.Path {
	return r.section
}

// Students returns the students in discovery order.
func (r *Roster) Students() []*m.Student {
	return r.students
}

// Student looks up a netid exactly.
func (r *Roster) Student(netID string) (*m.Student, error) {
	student, ok := r.byNetID[netID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStudentNotFound, netID)
	}

	return student, nil
}

// GradeAll walks every student with a submission for project, one at a time.
// With skipGraded, submissions already marked graded are passed over.
// Per-submission failures are reported and the batch moves on; only
// cancellation or a closed prompt stops it.
func (r *Roster) GradeAll(ctx context.Context, project int, skipGraded bool) (GradeSummary, error) {
	var summary GradeSummary

	for _, student := range r.students {
		sub, ok := student.Submission(project)
		if !ok {
			continue
		}

		if skipGraded && sub.Graded {
			continue
		}

		graded, err := r.gradeSubmission(ctx, sub)
		if err != nil {
			if endsSession(ctx, err) {
				return summary, err
			}

			summary.Failed++

			r.Logger.Error("Failed to grade submission", "student", student.NetID, "project", project, "error", err)
			r.UI.DisplayError(ctx, fmt.Errorf("%s: %w", student.NetID, err))

			continue
		}

		if graded {
			summary.Graded++
		} else {
			summary.Skipped++
		}
	}

	r.UI.Printf("\nProject %d: %d graded, %d skipped, %d failed\n", project, summary.Graded, summary.Skipped, summary.Failed)

	return summary, nil
}

// GradeOne grades a single student's submission for project.
func (r *Roster) GradeOne(ctx context.Context, netID string, project int) error {
	student, err := r.Student(netID)
	if err != nil {
		return err
	}

	sub, ok := student.Submission(project)
	if !ok {
		return fmt.Errorf("%s has no submission for project %d", netID, project)
	}

	_, err = r.gradeSubmission(ctx, sub)

	return err
}

// gradeSubmission runs review, grade and mark for one submission. It returns
// false when the operator chose not to record a grade.
func (r *Roster) gradeSubmission(ctx context.Context, sub *m.Submission) (bool, error) {
	if !sub.HasScoresheet() {
		return false, noScoresheetError(sub)
	}

	r.UI.Printf("\nGrading %s, project %d\n", sub.NetID, sub.Project)

	if err := r.Submissions.OpenForReview(ctx, sub); err != nil {
		return false, err
	}

	record, err := r.UI.Confirm(ctx, fmt.Sprintf("Record the grade for %s now?", sub.NetID))
	if err != nil {
		return false, err
	}

	if !record {
		r.UI.Printf("Left %s ungraded\n", sub.NetID)
		return false, nil
	}

	total, err := r.Submissions.Grade(ctx, sub)
	if err != nil {
		return false, err
	}

	gradedBy, err := r.Identity.CurrentUser(ctx)
	if err != nil {
		return false, fmt.Errorf("identify grader: %w", err)
	}

	if err := r.Submissions.MarkGraded(ctx, sub, gradedBy); err != nil {
		return false, err
	}

	r.Logger.Info("Graded submission", "student", sub.NetID, "project", sub.Project, "total", total, "grader", gradedBy)
	r.UI.Printf("Recorded %d for %s\nGraded by %s\n", total, sub.NetID, gradedBy)

	return true, nil
}

// Status summarizes every student's state for project.
func (r *Roster) Status(ctx context.Context, project int) []m.StatusRow {
	rows := make([]m.StatusRow, 0, len(r.students))

	for _, student := range r.students {
		row := m.StatusRow{NetID: student.NetID, Project: project, Scoresheet: m.ScoresheetNone}

		sub, ok := student.Submission(project)
		if ok {
			row.Submitted = true
			row.Graded = sub.Graded
			row.GradedBy = sub.GradedBy
			row.SourceFiles = len(sub.SourceFiles)
			row.Scoresheet, row.StatedTotal = r.scoresheetState(ctx, sub)
		}

		rows = append(rows, row)
	}

	return rows
}

func (r *Roster) scoresheetState(ctx context.Context, sub *m.Submission) (m.ScoresheetState, *int) {
	switch {
	case sub.ScoresheetMatches == 0:
		return m.ScoresheetMissing, nil
	case sub.ScoresheetMatches > 1:
		return m.ScoresheetAmbiguous, nil
	}

	ledger, err := r.Submissions.Ledger(ctx, sub)
	if err != nil {
		r.Logger.Debug("Unreadable scoresheet", "scoresheet", sub.Scoresheet, "error", err)
		return m.ScoresheetMalformed, nil
	}

	total := ledger.StatedTotal

	return m.ScoresheetOK, &total
}

// endsSession reports errors that should stop a batch rather than skip a
// single student.
func endsSession(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, controller.ErrPromptAborted)
}
