package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cardcomply/internal/config"
	"cardcomply/internal/domain"
	"cardcomply/internal/port"
)

const maxConcurrentAssetFetches = 4

// ComplianceAnalyzer runs the analysis core for one request.
type ComplianceAnalyzer interface {
	Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error)
	Ready() error
}

// AnalyzeInput is the DTO for compliance analysis requests. Each static ad is
// either a base64 data URL or an object storage key.
type AnalyzeInput struct {
	Issuer      string
	StaticAds   []string
	PrimaryText []string
	Headlines   []string
	Demo        bool
}

// AnalyzeOutput is the analysis result plus the persisted run id, if any.
type AnalyzeOutput struct {
	domain.AnalysisResult
	RunID *uuid.UUID `json:"runId,omitempty"`
}

// ComplianceService defines the compliance analysis contract.
type ComplianceService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error)
	Ready() error
}

type complianceService struct {
	analyzer ComplianceAnalyzer
	storage  port.ObjectStorage
	runRepo  port.AnalysisRunRepository
	s3Cfg    *config.S3Config
	cfg      config.AnalysisConfig
	logger   *zap.Logger
}

// NewComplianceService creates a new ComplianceService implementation.
// storage and runRepo may be nil when object storage or persistence is unavailable.
func NewComplianceService(
	analyzer ComplianceAnalyzer,
	storage port.ObjectStorage,
	runRepo port.AnalysisRunRepository,
	s3Cfg *config.S3Config,
	cfg config.AnalysisConfig,
	logger *zap.Logger,
) ComplianceService {
	return &complianceService{
		analyzer: analyzer,
		storage:  storage,
		runRepo:  runRepo,
		s3Cfg:    s3Cfg,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *complianceService) Ready() error {
	return s.analyzer.Ready()
}

func (s *complianceService) Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error) {
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	req := &domain.AnalysisRequest{
		Issuer:      input.Issuer,
		PrimaryText: input.PrimaryText,
		Headlines:   input.Headlines,
		Demo:        input.Demo,
	}
	if !input.Demo {
		images, err := s.resolveImages(ctx, input.StaticAds)
		if err != nil {
			return nil, err
		}
		req.Images = images
	}

	result, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &AnalyzeOutput{AnalysisResult: *result}
	if id, ok := s.persist(ctx, req, result); ok {
		out.RunID = &id
	}
	return out, nil
}

// resolveImages fetches every static ad concurrently, preserving input order.
func (s *complianceService) resolveImages(ctx context.Context, ads []string) ([]domain.ImageAsset, error) {
	refs := make([]string, 0, len(ads))
	for _, a := range ads {
		if a = strings.TrimSpace(a); a != "" {
			refs = append(refs, a)
		}
	}
	if s.cfg.MaxImages > 0 && len(refs) > s.cfg.MaxImages {
		return nil, fmt.Errorf("%w: %d images, at most %d allowed", domain.ErrTooManyImages, len(refs), s.cfg.MaxImages)
	}

	images := make([]domain.ImageAsset, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentAssetFetches)
	for i, ref := range refs {
		g.Go(func() error {
			img, err := s.resolveImage(gctx, ref)
			if err != nil {
				return fmt.Errorf("static ad %d: %w", i+1, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func (s *complianceService) resolveImage(ctx context.Context, ref string) (domain.ImageAsset, error) {
	var (
		data        []byte
		contentType string
		name        string
		err         error
	)
	switch {
	case strings.HasPrefix(ref, "data:"):
		contentType, data, err = decodeDataURL(ref)
		if err != nil {
			return domain.ImageAsset{}, err
		}
		name = "inline"
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return domain.ImageAsset{}, fmt.Errorf("%w: remote image URLs are not supported", domain.ErrInvalidRequest)
	default:
		if s.storage == nil {
			return domain.ImageAsset{}, fmt.Errorf("%w: object storage is not configured", domain.ErrInvalidRequest)
		}
		data, err = s.storage.Download(ctx, s.s3Cfg.Bucket, ref)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrFileTooLarge) {
				return domain.ImageAsset{}, err
			}
			return domain.ImageAsset{}, fmt.Errorf("downloading %s: %w", ref, err)
		}
		contentType = http.DetectContentType(data)
		name = ref
	}

	if limit := s.cfg.MaxImageSizeMB * 1024 * 1024; limit > 0 && int64(len(data)) > limit {
		return domain.ImageAsset{}, domain.ErrFileTooLarge
	}
	if !domain.AllowedImageContentTypes[contentType] {
		return domain.ImageAsset{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedImageType, contentType)
	}
	return domain.ImageAsset{Name: name, ContentType: contentType, Data: data}, nil
}

// decodeDataURL parses "data:<mime>;base64,<payload>".
func decodeDataURL(ref string) (string, []byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", nil, fmt.Errorf("%w: static ad must be a base64 data URL", domain.ErrInvalidRequest)
	}
	contentType := strings.ToLower(strings.TrimSuffix(header, ";base64"))
	if contentType == "image/jpg" {
		contentType = "image/jpeg"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: static ad is not valid base64", domain.ErrInvalidRequest)
		}
	}
	return contentType, data, nil
}

// persist stores the run for sharing. Failures are logged and never affect the response.
func (s *complianceService) persist(ctx context.Context, req *domain.AnalysisRequest, result *domain.AnalysisResult) (uuid.UUID, bool) {
	if s.runRepo == nil {
		return uuid.Nil, false
	}
	results, err := json.Marshal(result.Results)
	if err != nil {
		s.logger.Warn("encoding analysis run failed", zap.Error(err))
		return uuid.Nil, false
	}
	run := &domain.AnalysisRun{
		ID:                          uuid.New(),
		Issuer:                      strings.ToLower(strings.TrimSpace(req.Issuer)),
		IsDemo:                      result.IsDemo,
		ImageCount:                  len(req.Images),
		TextLength:                  len(req.Text()),
		ReferenceDocumentsAvailable: result.ReferenceDocumentsAvailable,
		Results:                     results,
	}
	if run.Issuer == "" {
		run.Issuer = s.cfg.DefaultIssuer
	}
	if err := s.runRepo.Create(context.WithoutCancel(ctx), run); err != nil {
		s.logger.Warn("persisting analysis run failed", zap.Error(err))
		return uuid.Nil, false
	}
	return run.ID, true
}
