package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"
	"tagrade.dev/pkg/tagrade/internal/adapter"
	"tagrade.dev/pkg/tagrade/internal/controller"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

// MenuTitle heads the grading menu.
const MenuTitle = "231 Grading Script"

// Menu keys for the grading options.
const (
	optionGradeAll      = "1"
	optionGradeUngraded = "2"
	optionGradeOne      = "3"
)

// MenuOptions lists the grading options in key order.
var MenuOptions = []string{
	"Grade all students in your Section",
	"Grade ungraded projects",
	"Grade one student",
}

// ErrHandinRootMissing means the configured handin root does not exist.
var ErrHandinRootMissing = errors.New("handin root not found")

// GradeArgs contains the arguments for an interactive grading session.
type GradeArgs struct {
	Config m.Config
}

// StatusArgs contains the arguments for a status report.
type StatusArgs struct {
	Config m.Config
	Format controller.StatusFormat
}

// Workflow is the entry point used by the command layer.
type Workflow interface {
	Grade(ctx context.Context, args GradeArgs) error
	Status(ctx context.Context, args StatusArgs) error
}

// EditorFactory builds the launcher for a configured editor command.
type EditorFactory func(editor string) adapter.EditorLauncher

type workflow struct {
	fs        adapter.SubmissionFSAdapter
	ui        controller.UI
	identity  adapter.IdentityProvider
	newEditor EditorFactory
}

// NewWorkflow creates a Workflow backed by the provided adapters and UI.
func NewWorkflow(
	fs adapter.SubmissionFSAdapter,
	ui controller.UI,
	identity adapter.IdentityProvider,
	newEditor EditorFactory,
) Workflow {
	return &workflow{
		fs:        fs,
		ui:        ui,
		identity:  identity,
		newEditor: newEditor,
	}
}

// Grade discovers the section and runs the grading menu until the operator exits.
func (w *workflow) Grade(ctx context.Context, args GradeArgs) error {
	cfg := args.Config
	logger := slog.Default().With("session", uuid.NewString(), "section", cfg.Section)

	roster, err := w.loadRoster(ctx, cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("Grading session started", "students", len(roster.Students()), "project", cfg.Project)

	for {
		choice, err := w.ui.Menu(ctx, MenuTitle, MenuOptions)
		if err != nil {
			if errors.Is(err, controller.ErrPromptAborted) {
				break
			}

			return err
		}

		if choice == controller.ExitOption {
			break
		}

		err = w.runOption(ctx, roster, cfg, choice)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil && !errors.Is(err, controller.ErrPromptAborted) {
			return err
		}
	}

	logger.Info("Grading session finished")
	w.ui.Printf("c ya later\n")

	return nil
}

func (w *workflow) runOption(ctx context.Context, roster *Roster, cfg m.Config, choice string) error {
	switch choice {
	case optionGradeAll, optionGradeUngraded:
		project, err := w.projectNumber(ctx, cfg)
		if err != nil {
			return err
		}

		_, err = roster.GradeAll(ctx, project, choice == optionGradeUngraded)

		return err

	case optionGradeOne:
		netID, err := w.ui.Ask(ctx, "What is the netid?: ")
		if err != nil {
			return err
		}

		project, err := w.projectNumber(ctx, cfg)
		if err != nil {
			return err
		}

		if err := roster.GradeOne(ctx, netID, project); err != nil {
			if endsSession(ctx, err) {
				return err
			}

			roster.Logger.Warn("Grade one failed", "student", netID, "project", project, "error", err)
			w.ui.DisplayError(ctx, err)
		}

		return nil
	}

	w.ui.Printf("Unknown option %q\n", choice)

	return nil
}

// projectNumber returns the configured project or asks for one.
func (w *workflow) projectNumber(ctx context.Context, cfg m.Config) (int, error) {
	if cfg.Project > 0 {
		return cfg.Project, nil
	}

	for {
		answer, err := w.ui.Ask(ctx, "Which project number?: ")
		if err != nil {
			return 0, err
		}

		project, err := strconv.Atoi(answer)
		if err == nil && project > 0 {
			return project, nil
		}

		w.ui.Printf("%q is not a project number\n", answer)
	}
}

// Status prints one row per student for the configured project.
func (w *workflow) Status(ctx context.Context, args StatusArgs) error {
	cfg := args.Config
	if cfg.Project <= 0 {
		return errors.New("status needs a project number (--project)")
	}

	roster, err := w.loadRoster(ctx, cfg, slog.Default().With("section", cfg.Section))
	if err != nil {
		return err
	}

	return w.ui.DisplayStatus(ctx, roster.Status(ctx, cfg.Project), args.Format)
}

func (w *workflow) loadRoster(ctx context.Context, cfg m.Config, logger *slog.Logger) (*Roster, error) {
	if err := w.checkHandinRoot(ctx, cfg.HandinRoot); err != nil {
		return nil, err
	}

	deps := RosterDeps{
		FS:          w.fs,
		Submissions: NewSubmissions(w.fs, w.newEditor(cfg.Editor), w.ui, cfg.SourceExt),
		UI:          w.ui,
		Identity:    w.identity,
		Logger:      logger,
	}

	roster, err := DiscoverRoster(ctx, deps, cfg.SectionDir(), cfg.Parallel)
	if err != nil {
		logger.Error("Failed to discover roster", "section", cfg.SectionDir(), "error", err)
		return nil, err
	}

	return roster, nil
}

func (w *workflow) checkHandinRoot(ctx context.Context, root m.Path) error {
	info, err := w.fs.FileInfo(ctx, root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s (are you on the course server? use --path)", ErrHandinRootMissing, root)
		}

		return fmt.Errorf("stat handin root %s: %w", root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrHandinRootMissing, root)
	}

	return nil
}
