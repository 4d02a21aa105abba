package port

import (
	"context"

	"github.com/google/uuid"

	"cardcomply/internal/domain"
)

// AnalysisRunRepository persists analysis responses for later sharing.
type AnalysisRunRepository interface {
	Create(ctx context.Context, run *domain.AnalysisRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRun, error)
}
