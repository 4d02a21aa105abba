package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cardcomply/internal/domain"
)

// MockComplianceAnalyzer is a mock implementation of service.ComplianceAnalyzer.
type MockComplianceAnalyzer struct {
	mock.Mock
}

func (m *MockComplianceAnalyzer) Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *MockComplianceAnalyzer) Ready() error {
	args := m.Called()
	return args.Error(0)
}
