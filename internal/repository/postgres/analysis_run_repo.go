package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cardcomply/internal/domain"
	"cardcomply/internal/port"
)

type analysisRunRepo struct {
	db *sqlx.DB
}

// NewAnalysisRunRepo creates a new PostgreSQL-backed AnalysisRunRepository.
func NewAnalysisRunRepo(db *sqlx.DB) port.AnalysisRunRepository {
	return &analysisRunRepo{db: db}
}

func (r *analysisRunRepo) Create(ctx context.Context, run *domain.AnalysisRun) error {
	run.CreatedAt = time.Now().UTC()
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO analysis_runs (
			id, issuer, is_demo, image_count, text_length,
			reference_documents_available, results, created_at
		) VALUES (
			:id, :issuer, :is_demo, :image_count, :text_length,
			:reference_documents_available, :results, :created_at
		)`, run)
	if err != nil {
		return fmt.Errorf("analysisRunRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRun, error) {
	var run domain.AnalysisRun
	err := r.db.GetContext(ctx, &run, "SELECT * FROM analysis_runs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisRunNotFound
		}
		return nil, fmt.Errorf("analysisRunRepo.GetByID: %w", err)
	}
	return &run, nil
}
