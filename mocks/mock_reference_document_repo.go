package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cardcomply/internal/domain"
)

// MockReferenceDocumentRepo is a mock implementation of port.ReferenceDocumentRepository.
type MockReferenceDocumentRepo struct {
	mock.Mock
}

func (m *MockReferenceDocumentRepo) Create(ctx context.Context, doc *domain.ReferenceDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockReferenceDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReferenceDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferenceDocument), args.Error(1)
}

func (m *MockReferenceDocumentRepo) ListByIssuer(ctx context.Context, issuer string, offset, limit int) ([]domain.ReferenceDocument, int, error) {
	args := m.Called(ctx, issuer, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReferenceDocument), args.Int(1), args.Error(2)
}

func (m *MockReferenceDocumentRepo) ListCompletedByIssuer(ctx context.Context, issuer string) ([]domain.ReferenceDocument, error) {
	args := m.Called(ctx, issuer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferenceDocument), args.Error(1)
}

func (m *MockReferenceDocumentRepo) CountCompleted(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockReferenceDocumentRepo) ClaimPending(ctx context.Context, limit int) ([]domain.ReferenceDocument, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferenceDocument), args.Error(1)
}

func (m *MockReferenceDocumentRepo) UpdateExtraction(ctx context.Context, doc *domain.ReferenceDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockReferenceDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
