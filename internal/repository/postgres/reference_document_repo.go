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

type referenceDocumentRepo struct {
	db *sqlx.DB
}

// NewReferenceDocumentRepo creates a new PostgreSQL-backed ReferenceDocumentRepository.
func NewReferenceDocumentRepo(db *sqlx.DB) port.ReferenceDocumentRepository {
	return &referenceDocumentRepo{db: db}
}

func (r *referenceDocumentRepo) Create(ctx context.Context, doc *domain.ReferenceDocument) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.ExtractionStatus == "" {
		doc.ExtractionStatus = domain.ExtractionStatusPending
	}

	query := `INSERT INTO reference_documents (
		id, issuer, name, document_type, content_type, storage_key, size_bytes,
		extracted_text, extraction_status, extraction_error, extraction_attempts,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7,
		$8, $9, $10, $11,
		$12, $13
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Issuer, doc.Name, doc.DocumentType, doc.ContentType, doc.StorageKey, doc.SizeBytes,
		doc.ExtractedText, doc.ExtractionStatus, doc.ExtractionError, doc.ExtractionAttempts,
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("referenceDocumentRepo.Create: %w", err)
	}
	return nil
}

func (r *referenceDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReferenceDocument, error) {
	var doc domain.ReferenceDocument
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM reference_documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReferenceDocumentNotFound
		}
		return nil, fmt.Errorf("referenceDocumentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *referenceDocumentRepo) ListByIssuer(ctx context.Context, issuer string, offset, limit int) ([]domain.ReferenceDocument, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM reference_documents WHERE issuer = $1", issuer)
	if err != nil {
		return nil, 0, fmt.Errorf("referenceDocumentRepo.ListByIssuer count: %w", err)
	}

	var docs []domain.ReferenceDocument
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM reference_documents WHERE issuer = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		issuer, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("referenceDocumentRepo.ListByIssuer: %w", err)
	}
	return docs, total, nil
}

func (r *referenceDocumentRepo) ListCompletedByIssuer(ctx context.Context, issuer string) ([]domain.ReferenceDocument, error) {
	var docs []domain.ReferenceDocument
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM reference_documents WHERE issuer = $1 AND extraction_status = $2
		ORDER BY created_at ASC, name ASC`,
		issuer, domain.ExtractionStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("referenceDocumentRepo.ListCompletedByIssuer: %w", err)
	}
	return docs, nil
}

func (r *referenceDocumentRepo) CountCompleted(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM reference_documents WHERE extraction_status = $1",
		domain.ExtractionStatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("referenceDocumentRepo.CountCompleted: %w", err)
	}
	return n, nil
}

// ClaimPending moves up to limit pending rows to processing in one statement.
// SKIP LOCKED lets several workers poll the same table without double claims.
func (r *referenceDocumentRepo) ClaimPending(ctx context.Context, limit int) ([]domain.ReferenceDocument, error) {
	var docs []domain.ReferenceDocument
	err := r.db.SelectContext(ctx, &docs,
		`UPDATE reference_documents SET
			extraction_status = $1,
			extraction_attempts = extraction_attempts + 1,
			updated_at = $2
		WHERE id IN (
			SELECT id FROM reference_documents
			WHERE extraction_status = $3
			ORDER BY created_at ASC
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		domain.ExtractionStatusProcessing, time.Now().UTC(), domain.ExtractionStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("referenceDocumentRepo.ClaimPending: %w", err)
	}
	return docs, nil
}

func (r *referenceDocumentRepo) UpdateExtraction(ctx context.Context, doc *domain.ReferenceDocument) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE reference_documents SET
			extracted_text = $1, extraction_status = $2, extraction_error = $3, updated_at = $4
		WHERE id = $5`,
		doc.ExtractedText, doc.ExtractionStatus, doc.ExtractionError, doc.UpdatedAt, doc.ID)
	if err != nil {
		return fmt.Errorf("referenceDocumentRepo.UpdateExtraction: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReferenceDocumentNotFound
	}
	return nil
}

func (r *referenceDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM reference_documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("referenceDocumentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReferenceDocumentNotFound
	}
	return nil
}
