// Package mocks provides testify doubles for the adapter interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

// MockEditorLauncher is a mock implementation of adapter.EditorLauncher.
type MockEditorLauncher struct {
	mock.Mock
}

// NewMockEditorLauncher creates a MockEditorLauncher whose expectations are
// asserted when the test finishes.
func NewMockEditorLauncher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEditorLauncher {
	launcher := &MockEditorLauncher{}
	launcher.Test(t)

	t.Cleanup(func() { launcher.AssertExpectations(t) })

	return launcher
}

// Open records the launch request.
func (l *MockEditorLauncher) Open(ctx context.Context, paths []m.Path) {
	l.Called(ctx, paths)
}

// Name returns the stubbed editor name.
func (l *MockEditorLauncher) Name() string {
	ret := l.Called()

	return ret.String(0)
}
