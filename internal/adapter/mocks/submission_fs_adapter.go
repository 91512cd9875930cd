package mocks

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

// MockSubmissionFSAdapter is a mock implementation of adapter.SubmissionFSAdapter.
type MockSubmissionFSAdapter struct {
	mock.Mock
}

// NewMockSubmissionFSAdapter creates a MockSubmissionFSAdapter whose
// expectations are asserted when the test finishes.
func NewMockSubmissionFSAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSubmissionFSAdapter {
	fs := &MockSubmissionFSAdapter{}
	fs.Test(t)

	t.Cleanup(func() { fs.AssertExpectations(t) })

	return fs
}

// ReadDir provides a mock function.
func (f *MockSubmissionFSAdapter) ReadDir(ctx context.Context, dir m.Path) ([]os.DirEntry, error) {
	ret := f.Called(ctx, dir)

	var entries []os.DirEntry
	if v, ok := ret.Get(0).([]os.DirEntry); ok {
		entries = v
	}

	return entries, ret.Error(1)
}

// ReadFile provides a mock function.
func (f *MockSubmissionFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	ret := f.Called(ctx, path)

	var content []byte
	if v, ok := ret.Get(0).([]byte); ok {
		content = v
	}

	return content, ret.Error(1)
}

// WriteFile provides a mock function.
func (f *MockSubmissionFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error {
	ret := f.Called(ctx, path, content, perm)

	return ret.Error(0)
}

// Glob provides a mock function.
func (f *MockSubmissionFSAdapter) Glob(ctx context.Context, dir m.Path, pattern string) ([]m.Path, error) {
	ret := f.Called(ctx, dir, pattern)

	var paths []m.Path
	if v, ok := ret.Get(0).([]m.Path); ok {
		paths = v
	}

	return paths, ret.Error(1)
}

// FileInfo provides a mock function.
func (f *MockSubmissionFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	ret := f.Called(ctx, path)

	var info os.FileInfo
	if v, ok := ret.Get(0).(os.FileInfo); ok {
		info = v
	}

	return info, ret.Error(1)
}

// JoinPath provides a mock function.
func (f *MockSubmissionFSAdapter) JoinPath(ctx context.Context, elem ...string) m.Path {
	args := []interface{}{ctx}
	for _, e := range elem {
		args = append(args, e)
	}

	ret := f.Called(args...)

	return ret.Get(0).(m.Path)
}
