// Package adapter contains infrastructure adapters used by the grading domain.
package adapter

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	m "tagrade.dev/pkg/tagrade/internal/model"
)

// SubmissionFSAdapter abstracts the handin tree so the domain layer can be
// tested without depending on a particular directory layout on disk.
type SubmissionFSAdapter interface {
	// ReadDir lists the immediate children of dir, sorted by name.
	ReadDir(ctx context.Context, dir m.Path) ([]os.DirEntry, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile replaces the contents of path, creating it with perm if needed.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error

	// Glob returns the entries directly inside dir whose name matches pattern.
	Glob(ctx context.Context, dir m.Path, pattern string) ([]m.Path, error)

	// FileInfo returns metadata for path, following symlinks.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// JoinPath joins path elements into a single path.
	JoinPath(ctx context.Context, elem ...string) m.Path
}

// LocalSubmissionFSAdapter implements SubmissionFSAdapter on the local disk.
type LocalSubmissionFSAdapter struct{}

// NewLocalSubmissionFSAdapter constructs a LocalSubmissionFSAdapter.
func NewLocalSubmissionFSAdapter() *LocalSubmissionFSAdapter {
	return &LocalSubmissionFSAdapter{}
}

// ReadDir lists dir entries sorted by filename.
func (a *LocalSubmissionFSAdapter) ReadDir(ctx context.Context, dir m.Path) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadDir(string(dir))
}

// ReadFile loads file contents from disk.
func (a *LocalSubmissionFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from the handin tree being graded
	return os.ReadFile(string(path))
}

// WriteFile truncates and rewrites path.
func (a *LocalSubmissionFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// Glob matches pattern against the names directly inside dir.
func (a *LocalSubmissionFSAdapter) Glob(ctx context.Context, dir m.Path, pattern string) ([]m.Path, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(string(dir), pattern))
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)

	paths := make([]m.Path, 0, len(matches))
	for _, match := range matches {
		paths = append(paths, m.Path(match))
	}

	return paths, nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSubmissionFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// JoinPath joins path elements into a single path.
func (a *LocalSubmissionFSAdapter) JoinPath(_ context.Context, elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
