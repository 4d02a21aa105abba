package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cardcomply/internal/domain"
)

// MockReferenceMaterialProvider is a mock implementation of port.ReferenceMaterialProvider.
type MockReferenceMaterialProvider struct {
	mock.Mock
}

func (m *MockReferenceMaterialProvider) GetReferenceDocuments(ctx context.Context, issuer string) []domain.ReferenceDocument {
	args := m.Called(ctx, issuer)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ReferenceDocument)
}

func (m *MockReferenceMaterialProvider) GetReferenceText(ctx context.Context, issuer string) string {
	args := m.Called(ctx, issuer)
	return args.String(0)
}

func (m *MockReferenceMaterialProvider) GetReferenceDocumentCount(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}
