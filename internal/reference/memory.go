package reference

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cardcomply/internal/domain"
)

// MemoryRepository is an in-process port.ReferenceDocumentRepository for
// local runs and tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]domain.ReferenceDocument
	now  func() time.Time
}

// NewMemoryRepository creates a repository seeded with docs.
func NewMemoryRepository(docs ...domain.ReferenceDocument) *MemoryRepository {
	r := &MemoryRepository{docs: make(map[uuid.UUID]domain.ReferenceDocument), now: time.Now}
	for i := range docs {
		d := docs[i]
		_ = r.Create(context.Background(), &d)
	}
	return r
}

func (r *MemoryRepository) Create(_ context.Context, doc *domain.ReferenceDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.ExtractionStatus == "" {
		doc.ExtractionStatus = domain.ExtractionStatusPending
	}
	now := r.now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	doc.Issuer = strings.ToLower(strings.TrimSpace(doc.Issuer))
	r.docs[doc.ID] = *doc
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.ReferenceDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrReferenceDocumentNotFound
	}
	return &d, nil
}

func (r *MemoryRepository) ListByIssuer(_ context.Context, issuer string, offset, limit int) ([]domain.ReferenceDocument, int, error) {
	all := r.filter(func(d domain.ReferenceDocument) bool { return d.Issuer == issuer })
	total := len(all)
	if offset >= total {
		return []domain.ReferenceDocument{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

func (r *MemoryRepository) ListCompletedByIssuer(_ context.Context, issuer string) ([]domain.ReferenceDocument, error) {
	return r.filter(func(d domain.ReferenceDocument) bool {
		return d.Issuer == issuer && d.ExtractionStatus == domain.ExtractionStatusCompleted
	}), nil
}

func (r *MemoryRepository) CountCompleted(_ context.Context) (int, error) {
	return len(r.filter(func(d domain.ReferenceDocument) bool {
		return d.ExtractionStatus == domain.ExtractionStatusCompleted
	})), nil
}

func (r *MemoryRepository) ClaimPending(_ context.Context, limit int) ([]domain.ReferenceDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pending := make([]domain.ReferenceDocument, 0)
	for _, d := range r.docs {
		if d.ExtractionStatus == domain.ExtractionStatusPending {
			pending = append(pending, d)
		}
	}
	sortByCreated(pending)
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	now := r.now()
	for i := range pending {
		pending[i].ExtractionStatus = domain.ExtractionStatusProcessing
		pending[i].ExtractionAttempts++
		pending[i].UpdatedAt = now
		r.docs[pending[i].ID] = pending[i]
	}
	return pending, nil
}

func (r *MemoryRepository) UpdateExtraction(_ context.Context, doc *domain.ReferenceDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[doc.ID]
	if !ok {
		return domain.ErrReferenceDocumentNotFound
	}
	d.ExtractedText = doc.ExtractedText
	d.ExtractionStatus = doc.ExtractionStatus
	d.ExtractionError = doc.ExtractionError
	d.UpdatedAt = r.now()
	r.docs[doc.ID] = d
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return domain.ErrReferenceDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *MemoryRepository) filter(keep func(domain.ReferenceDocument) bool) []domain.ReferenceDocument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ReferenceDocument, 0, len(r.docs))
	for _, d := range r.docs {
		if keep(d) {
			out = append(out, d)
		}
	}
	sortByCreated(out)
	return out
}

func sortByCreated(docs []domain.ReferenceDocument) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].Name < docs[j].Name
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
}
