package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cardcomply/internal/service"
)

// MockComplianceService is a mock implementation of service.ComplianceService.
type MockComplianceService struct {
	mock.Mock
}

func (m *MockComplianceService) Analyze(ctx context.Context, input service.AnalyzeInput) (*service.AnalyzeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalyzeOutput), args.Error(1)
}

func (m *MockComplianceService) Ready() error {
	args := m.Called()
	return args.Error(0)
}
