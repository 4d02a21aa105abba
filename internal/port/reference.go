package port

import (
	"context"

	"github.com/google/uuid"

	"cardcomply/internal/domain"
)

// ReferenceMaterialProvider supplies completed issuer reference documents to the
// analysis core. Implementations never return errors: an unavailable store is
// reported as "no reference material".
type ReferenceMaterialProvider interface {
	GetReferenceDocuments(ctx context.Context, issuer string) []domain.ReferenceDocument
	GetReferenceText(ctx context.Context, issuer string) string
	GetReferenceDocumentCount(ctx context.Context) int
}

// ReferenceDocumentRepository defines the contract for reference document persistence.
type ReferenceDocumentRepository interface {
	Create(ctx context.Context, doc *domain.ReferenceDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReferenceDocument, error)
	ListByIssuer(ctx context.Context, issuer string, offset, limit int) ([]domain.ReferenceDocument, int, error)
	ListCompletedByIssuer(ctx context.Context, issuer string) ([]domain.ReferenceDocument, error)
	CountCompleted(ctx context.Context) (int, error)
	// ClaimPending atomically moves up to limit pending documents to processing.
	ClaimPending(ctx context.Context, limit int) ([]domain.ReferenceDocument, error)
	UpdateExtraction(ctx context.Context, doc *domain.ReferenceDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
}
