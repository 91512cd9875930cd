package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockIdentityProvider is a mock implementation of adapter.IdentityProvider.
type MockIdentityProvider struct {
	mock.Mock
}

// NewMockIdentityProvider creates a MockIdentityProvider whose expectations
// are asserted when the test finishes.
func NewMockIdentityProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockIdentityProvider {
	provider := &MockIdentityProvider{}
	provider.Test(t)

	t.Cleanup(func() { provider.AssertExpectations(t) })

	return provider
}

// CurrentUser returns the stubbed identity.
func (p *MockIdentityProvider) CurrentUser(ctx context.Context) (string, error) {
	ret := p.Called(ctx)

	return ret.String(0), ret.Error(1)
}
