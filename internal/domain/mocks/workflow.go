// Package mocks provides testify doubles for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"tagrade.dev/pkg/tagrade/internal/domain"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

var _ domain.Workflow = (*MockWorkflow)(nil)

// NewMockWorkflow creates a MockWorkflow whose expectations are asserted
// when the test finishes.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	wf := &MockWorkflow{}
	wf.Test(t)

	t.Cleanup(func() { wf.AssertExpectations(t) })

	return wf
}

// Grade provides a mock function.
func (w *MockWorkflow) Grade(ctx context.Context, args domain.GradeArgs) error {
	ret := w.Called(ctx, args)

	return ret.Error(0)
}

// Status provides a mock function.
func (w *MockWorkflow) Status(ctx context.Context, args domain.StatusArgs) error {
	ret := w.Called(ctx, args)

	return ret.Error(0)
}
