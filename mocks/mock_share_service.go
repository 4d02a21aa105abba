package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cardcomply/internal/domain"
	"cardcomply/internal/service"
)

// MockShareService is a mock implementation of service.ShareService.
type MockShareService struct {
	mock.Mock
}

func (m *MockShareService) Share(ctx context.Context, input service.ShareInput) (*service.ShareLink, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ShareLink), args.Error(1)
}

func (m *MockShareService) Resolve(ctx context.Context, token string) (*domain.AnalysisRun, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisRun), args.Error(1)
}
