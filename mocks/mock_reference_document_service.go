package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cardcomply/internal/domain"
	"cardcomply/internal/service"
)

// MockReferenceDocumentService is a mock implementation of service.ReferenceDocumentService.
type MockReferenceDocumentService struct {
	mock.Mock
}

func (m *MockReferenceDocumentService) Upload(ctx context.Context, input service.ReferenceUploadInput) (*domain.ReferenceDocument, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferenceDocument), args.Error(1)
}

func (m *MockReferenceDocumentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReferenceDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferenceDocument), args.Error(1)
}

func (m *MockReferenceDocumentService) List(ctx context.Context, issuer string, offset, limit int) ([]domain.ReferenceDocument, int, error) {
	args := m.Called(ctx, issuer, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReferenceDocument), args.Int(1), args.Error(2)
}

func (m *MockReferenceDocumentService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockReferenceDocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReferenceDocumentService) CountCompleted(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockReferenceDocumentService) Extract(ctx context.Context, doc *domain.ReferenceDocument, maxAttempts int) {
	m.Called(ctx, doc, maxAttempts)
}
