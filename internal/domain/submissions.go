package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"tagrade.dev/pkg/tagrade/internal/adapter"
	"tagrade.dev/pkg/tagrade/internal/controller"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

const (
	// GradedMarkerName is the sentinel file whose presence marks a submission graded.
	GradedMarkerName = ".graded"
	// ScoresheetPattern globs the score file inside a submission directory.
	ScoresheetPattern = "*.score"
	// DefaultSourceExt is the extension of files treated as student code.
	DefaultSourceExt = ".py"

	markerPerm     os.FileMode = 0o644
	scoresheetPerm os.FileMode = 0o644
)

// Submissions discovers and grades single project submissions.
type Submissions interface {
	Discover(ctx context.Context, netID string, dir m.Path) (*m.Submission, error)
	OpenForReview(ctx context.Context, sub *m.Submission) error
	Ledger(ctx context.Context, sub *m.Submission) (m.Ledger, error)
	Grade(ctx context.Context, sub *m.Submission) (int, error)
	MarkGraded(ctx context.Context, sub *m.Submission, gradedBy string) error
}

type submissions struct {
	fs      adapter.SubmissionFSAdapter
	editor  adapter.EditorLauncher
	ui      controller.UI
	decider Decider
	source  *regexp.Regexp
}

// NewSubmissions wires a Submissions service. sourceExt selects which files
// count as code; an empty value means DefaultSourceExt.
func NewSubmissions(
	fs adapter.SubmissionFSAdapter,
	editor adapter.EditorLauncher,
	ui controller.UI,
	sourceExt string,
) Submissions {
	return &submissions{
		fs:      fs,
		editor:  editor,
		ui:      ui,
		decider: uiDecider{ui: ui},
		source:  sourceFilePattern(sourceExt),
	}
}

// sourceFilePattern matches names made of word characters plus ext, which
// rules out dotfiles such as the graded marker.
func sourceFilePattern(ext string) *regexp.Regexp {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		ext = DefaultSourceExt
	}

	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return regexp.MustCompile(`^\w+` + regexp.QuoteMeta(ext) + `$`)
}

// Discover builds a Submission from the immediate children of dir, whose
// name is the project number.
func (s *submissions) Discover(ctx context.Context, netID string, dir m.Path) (*m.Submission, error) {
	project, err := strconv.Atoi(dir.Base())
	if err != nil {
		return nil, fmt.Errorf("project directory %s is not a number: %w", dir, err)
	}

	entries, err := s.fs.ReadDir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("read submission %s: %w", dir, err)
	}

	sub := &m.Submission{
		NetID:    netID,
		Location: dir,
		Project:  project,
	}

	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == GradedMarkerName {
			continue
		}

		path := s.fs.JoinPath(ctx, string(dir), entry.Name())

		if !entry.Type().IsRegular() {
			info, err := s.fs.FileInfo(ctx, path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}

		sub.AllFiles = append(sub.AllFiles, path)

		if s.source.MatchString(entry.Name()) {
			sub.SourceFiles = append(sub.SourceFiles, path)
		}
	}

	if err := s.loadGradedState(ctx, sub); err != nil {
		return nil, err
	}

	scoresheets, err := s.fs.Glob(ctx, dir, ScoresheetPattern)
	if err != nil {
		return nil, fmt.Errorf("find scoresheet in %s: %w", dir, err)
	}

	sub.ScoresheetMatches = len(scoresheets)
	if len(scoresheets) == 1 {
		sub.Scoresheet = scoresheets[0]
	} else {
		slog.Debug("Scoresheet unresolved", "submission", dir, "matches", len(scoresheets))
	}

	return sub, nil
}

func (s *submissions) loadGradedState(ctx context.Context, sub *m.Submission) error {
	marker := s.fs.JoinPath(ctx, string(sub.Location), GradedMarkerName)

	if _, err := s.fs.FileInfo(ctx, marker); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sub.Graded = false
			return nil
		}

		return fmt.Errorf("check graded marker %s: %w", marker, err)
	}

	sub.Graded = true

	content, err := s.fs.ReadFile(ctx, marker)
	if err != nil {
		slog.Warn("Failed to read graded marker", "marker", marker, "error", err)
		return nil
	}

	sub.GradedBy = strings.TrimSpace(string(content))

	return nil
}

// OpenForReview opens the scoresheet, then waits for the operator before
// opening every submitted file. Editors are not waited on.
func (s *submissions) OpenForReview(ctx context.Context, sub *m.Submission) error {
	if sub.HasScoresheet() {
		s.editor.Open(ctx, []m.Path{sub.Scoresheet})
	}

	if err := s.ui.WaitForEnter(ctx, fmt.Sprintf("Press enter to open the files in %s.", s.editor.Name())); err != nil {
		return err
	}

	for _, path := range sub.AllFiles {
		s.ui.Printf("Opening: %s\n", path)
	}

	s.editor.Open(ctx, sub.AllFiles)

	return nil
}

// Ledger reads and parses the submission's scoresheet.
func (s *submissions) Ledger(ctx context.Context, sub *m.Submission) (m.Ledger, error) {
	_, ledger, err := s.readLedger(ctx, sub)

	return ledger, err
}

func (s *submissions) readLedger(ctx context.Context, sub *m.Submission) (string, m.Ledger, error) {
	if !sub.HasScoresheet() {
		return "", m.Ledger{}, noScoresheetError(sub)
	}

	content, err := s.fs.ReadFile(ctx, sub.Scoresheet)
	if err != nil {
		return "", m.Ledger{}, fmt.Errorf("read scoresheet %s: %w", sub.Scoresheet, err)
	}

	text := string(content)

	ledger, err := ParseLedger(text)
	if err != nil {
		return "", m.Ledger{}, fmt.Errorf("%s: %w", sub.Scoresheet, err)
	}

	return text, ledger, nil
}

// Grade reconciles the scoresheet total with its rubric items, asking the
// operator when they disagree, and returns the total recorded.
func (s *submissions) Grade(ctx context.Context, sub *m.Submission) (int, error) {
	text, ledger, err := s.readLedger(ctx, sub)
	if err != nil {
		return 0, err
	}

	total, write, err := Reconcile(ctx, ledger, s.decider)
	if err != nil {
		return 0, err
	}

	if !write {
		slog.Info("Kept stated total", "scoresheet", sub.Scoresheet, "total", total, "computed", ledger.ComputedTotal())
		return total, nil
	}

	updated := RewriteTotal(text, ledger.StatedTotal, total)
	if updated == text {
		slog.Debug("Scoresheet already up to date", "scoresheet", sub.Scoresheet, "total", total)
		return total, nil
	}

	if err := s.fs.WriteFile(ctx, sub.Scoresheet, []byte(updated), scoresheetPerm); err != nil {
		return 0, fmt.Errorf("write scoresheet %s: %w", sub.Scoresheet, err)
	}

	slog.Info("Wrote scoresheet total", "scoresheet", sub.Scoresheet, "old", ledger.StatedTotal, "new", total)

	diff, err := ScoresheetDiff(sub.Scoresheet.Base(), text, updated)
	if err != nil {
		slog.Warn("Failed to diff scoresheet", "scoresheet", sub.Scoresheet, "error", err)
		return total, nil
	}

	s.ui.DisplayDiff(ctx, diff)

	return total, nil
}

// MarkGraded writes the marker file with the grader's identity. Re-marking
// overwrites the previous grader.
func (s *submissions) MarkGraded(ctx context.Context, sub *m.Submission, gradedBy string) error {
	marker := s.fs.JoinPath(ctx, string(sub.Location), GradedMarkerName)

	if err := s.fs.WriteFile(ctx, marker, []byte(gradedBy), markerPerm); err != nil {
		return fmt.Errorf("write graded marker %s: %w", marker, err)
	}

	sub.Graded = true
	sub.GradedBy = gradedBy

	return nil
}

func noScoresheetError(sub *m.Submission) error {
	if sub.ScoresheetMatches > 1 {
		return fmt.Errorf("%w: %s has %d score files", ErrNoScoresheet, sub.Location, sub.ScoresheetMatches)
	}

	return fmt.Errorf("%w: %s has no score file", ErrNoScoresheet, sub.Location)
}
