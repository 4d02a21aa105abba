package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cardcomply/internal/config"
	"cardcomply/internal/domain"
	"cardcomply/internal/extract"
	"cardcomply/internal/issuer"
	"cardcomply/internal/port"
)

// ReferenceUploadInput is the DTO for reference document uploads.
type ReferenceUploadInput struct {
	Issuer       string
	Name         string
	DocumentType domain.ReferenceDocumentType
	File         multipart.File
	Header       *multipart.FileHeader
}

// ExtractionObserver is notified when an extraction reaches a final status.
type ExtractionObserver interface {
	ObserveExtraction(status domain.ExtractionStatus)
}

// ReferenceDocumentService defines the reference document management contract.
type ReferenceDocumentService interface {
	Upload(ctx context.Context, input ReferenceUploadInput) (*domain.ReferenceDocument, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReferenceDocument, error)
	List(ctx context.Context, issuer string, offset, limit int) ([]domain.ReferenceDocument, int, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountCompleted(ctx context.Context) (int, error)
	// Extract downloads and extracts a claimed document, then records the outcome.
	Extract(ctx context.Context, doc *domain.ReferenceDocument, maxAttempts int)
}

type referenceDocumentService struct {
	repo     port.ReferenceDocumentRepository
	storage  port.ObjectStorage
	issuers  *issuer.Catalog
	cfg      *config.S3Config
	observer ExtractionObserver
	logger   *zap.Logger
}

// NewReferenceDocumentService creates a new ReferenceDocumentService implementation.
// observer may be nil.
func NewReferenceDocumentService(
	repo port.ReferenceDocumentRepository,
	storage port.ObjectStorage,
	issuers *issuer.Catalog,
	cfg *config.S3Config,
	observer ExtractionObserver,
	logger *zap.Logger,
) ReferenceDocumentService {
	return &referenceDocumentService{
		repo:     repo,
		storage:  storage,
		issuers:  issuers,
		cfg:      cfg,
		observer: observer,
		logger:   logger,
	}
}

func (s *referenceDocumentService) Upload(ctx context.Context, input ReferenceUploadInput) (*domain.ReferenceDocument, error) {
	profile, ok := s.issuers.Lookup(s.issuers.Key(input.Issuer))
	if !ok {
		return nil, fmt.Errorf("%w: unknown issuer %q", domain.ErrInvalidRequest, input.Issuer)
	}
	if !domain.ValidReferenceDocumentTypes[input.DocumentType] {
		return nil, domain.ErrInvalidDocumentType
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	contentType, ok := domain.AllowedReferenceContentTypes[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if input.Header.Size > s.cfg.MaxFileSizeMB*1024*1024 {
		return nil, domain.ErrFileTooLarge
	}

	// Sniff the first 512 bytes so a renamed binary cannot pass as text.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if !sniffMatches(contentType, http.DetectContentType(buf[:n])) {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = input.Header.Filename
	}
	doc := &domain.ReferenceDocument{
		ID:               uuid.New(),
		Issuer:           profile.Key,
		Name:             name,
		DocumentType:     input.DocumentType,
		ContentType:      contentType,
		SizeBytes:        input.Header.Size,
		ExtractionStatus: domain.ExtractionStatusPending,
	}
	doc.StorageKey = fmt.Sprintf("reference-documents/%s/%s/%s", doc.Issuer, doc.ID, filepath.Base(input.Header.Filename))

	s.logger.Info("uploading reference document",
		zap.String("issuer", doc.Issuer), zap.String("name", doc.Name),
		zap.String("content_type", contentType), zap.Int64("bytes", doc.SizeBytes))

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         doc.StorageKey,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	}); err != nil {
		s.logger.Error("reference document upload failed", zap.String("id", doc.ID.String()), zap.Error(err))
		return nil, domain.ErrUploadFailed
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, doc.StorageKey); delErr != nil {
			s.logger.Warn("orphaned reference object", zap.String("key", doc.StorageKey), zap.Error(delErr))
		}
		return nil, fmt.Errorf("creating reference document: %w", err)
	}
	return doc, nil
}

func sniffMatches(declared, sniffed string) bool {
	switch declared {
	case domain.AllowedReferenceContentTypes["xlsx"]:
		return sniffed == "application/zip"
	default:
		return strings.HasPrefix(sniffed, "text/")
	}
}

func (s *referenceDocumentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReferenceDocument, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *referenceDocumentService) List(ctx context.Context, issuerKey string, offset, limit int) ([]domain.ReferenceDocument, int, error) {
	return s.repo.ListByIssuer(ctx, s.issuers.Key(issuerKey), offset, limit)
}

func (s *referenceDocumentService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.Bucket, doc.StorageKey, s.cfg.PresignExpiry)
}

func (s *referenceDocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info("deleting reference document", zap.String("id", id.String()), zap.String("issuer", doc.Issuer))

	if err := s.storage.Delete(ctx, s.cfg.Bucket, doc.StorageKey); err != nil {
		return fmt.Errorf("deleting from storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *referenceDocumentService) CountCompleted(ctx context.Context) (int, error) {
	return s.repo.CountCompleted(ctx)
}

func (s *referenceDocumentService) Extract(ctx context.Context, doc *domain.ReferenceDocument, maxAttempts int) {
	logger := s.logger.With(zap.String("id", doc.ID.String()), zap.Int("attempt", doc.ExtractionAttempts))

	text, err := s.extractText(ctx, doc)
	if err == nil {
		doc.ExtractedText = text
		doc.ExtractionStatus = domain.ExtractionStatusCompleted
		doc.ExtractionError = ""
		logger.Info("reference document extracted", zap.Int("chars", len(text)))
	} else {
		doc.ExtractionError = err.Error()
		if doc.ExtractionAttempts < maxAttempts {
			doc.ExtractionStatus = domain.ExtractionStatusPending
			logger.Warn("reference extraction failed, will retry", zap.Error(err))
		} else {
			doc.ExtractionStatus = domain.ExtractionStatusFailed
			logger.Error("reference extraction failed permanently", zap.Error(err))
		}
	}

	if err := s.repo.UpdateExtraction(ctx, doc); err != nil {
		logger.Error("recording extraction result failed", zap.Error(err))
		return
	}
	if s.observer != nil && doc.ExtractionStatus != domain.ExtractionStatusPending {
		s.observer.ObserveExtraction(doc.ExtractionStatus)
	}
}

func (s *referenceDocumentService) extractText(ctx context.Context, doc *domain.ReferenceDocument) (string, error) {
	data, err := s.storage.Download(ctx, s.cfg.Bucket, doc.StorageKey)
	if err != nil {
		return "", fmt.Errorf("downloading: %w", err)
	}
	return extract.Text(doc.ContentType, data)
}
