package compliance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"cardcomply/internal/domain"
	"cardcomply/internal/generator"
	"cardcomply/internal/issuer"
	"cardcomply/internal/port"
)

const (
	trackImage = "image"
	trackText  = "text"
)

// Recorder receives analysis measurements.
type Recorder interface {
	ObserveTrack(track string, elapsed time.Duration, failed bool)
	ObserveFindings(demo bool, findings []domain.ComplianceFinding)
}

type nopRecorder struct{}

func (nopRecorder) ObserveTrack(string, time.Duration, bool)         {}
func (nopRecorder) ObserveFindings(bool, []domain.ComplianceFinding) {}

// Analyzer runs the image and text compliance tracks for one submission.
// It holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	generator  port.TextGenerator
	references port.ReferenceMaterialProvider
	issuers    *issuer.Catalog
	recorder   Recorder
	logger     *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the analyzer logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(a *Analyzer) { a.recorder = r }
}

// NewAnalyzer creates an Analyzer. gen may be nil, in which case every
// non-demo request is rejected as not configured.
func NewAnalyzer(gen port.TextGenerator, refs port.ReferenceMaterialProvider, issuers *issuer.Catalog, opts ...Option) *Analyzer {
	a := &Analyzer{
		generator:  gen,
		references: refs,
		issuers:    issuers,
		recorder:   nopRecorder{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ready reports whether live analysis can run.
func (a *Analyzer) Ready() error {
	if a.generator == nil {
		return fmt.Errorf("%w: no generator provider configured", domain.ErrAnalysisNotConfigured)
	}
	if err := a.generator.Ready(); err != nil {
		if errors.Is(err, domain.ErrAnalysisNotConfigured) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrAnalysisNotConfigured, err)
	}
	return nil
}

// Analyze evaluates every image and text rule for req. It returns a wrapped
// domain.ErrInvalidRequest for an unknown issuer and a wrapped
// domain.ErrAnalysisNotConfigured when live analysis cannot run; generator
// and parse failures become findings.
func (a *Analyzer) Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	issuerKey := a.issuers.Key(req.Issuer)
	profile, ok := a.issuers.Lookup(issuerKey)
	if !ok {
		return nil, fmt.Errorf("%w: unknown issuer %q", domain.ErrInvalidRequest, issuerKey)
	}

	refCount := a.references.GetReferenceDocumentCount(ctx)

	if req.Demo {
		findings, err := DemoFindings(len(a.references.GetReferenceDocuments(ctx, issuerKey)))
		if err != nil {
			return nil, err
		}
		a.recorder.ObserveFindings(true, findings)
		return &domain.AnalysisResult{Results: findings, IsDemo: true, ReferenceDocumentsAvailable: refCount}, nil
	}

	if err := a.Ready(); err != nil {
		return nil, err
	}

	composer := NewPromptComposer(profile)
	refDocs := len(a.references.GetReferenceDocuments(ctx, issuerKey))
	refText := a.references.GetReferenceText(ctx, issuerKey)

	logger := a.logger.With(zap.String("issuer", issuerKey), zap.Int("images", len(req.Images)))

	var (
		wg                          sync.WaitGroup
		imageFindings, textFindings []domain.ComplianceFinding
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		imageFindings = a.runTrack(ctx, logger, trackImage, refDocs, func(ctx context.Context) ([]domain.ComplianceFinding, error) {
			return a.analyzeImages(ctx, req, composer, refText, refDocs)
		})
	}()
	go func() {
		defer wg.Done()
		textFindings = a.runTrack(ctx, logger, trackText, refDocs, func(ctx context.Context) ([]domain.ComplianceFinding, error) {
			return a.analyzeText(ctx, req, composer, refText, refDocs)
		})
	}()
	wg.Wait()

	findings := make([]domain.ComplianceFinding, 0, len(imageFindings)+len(textFindings))
	findings = append(findings, imageFindings...)
	findings = append(findings, textFindings...)

	a.recorder.ObserveFindings(false, findings)
	logger.Info("compliance analysis completed", zap.Int("findings", len(findings)), zap.Int("reference_documents", refDocs))

	return &domain.AnalysisResult{Results: findings, ReferenceDocumentsAvailable: refCount}, nil
}

type trackFunc func(ctx context.Context) ([]domain.ComplianceFinding, error)

// runTrack executes one track and converts an error or panic into a single
// failed finding so the sibling track is unaffected.
func (a *Analyzer) runTrack(ctx context.Context, logger *zap.Logger, track string, refDocs int, fn trackFunc) []domain.ComplianceFinding {
	start := time.Now()
	findings, err := safeRun(ctx, fn)
	a.recorder.ObserveTrack(track, time.Since(start), err != nil)
	if err == nil {
		return findings
	}
	logger.Error("compliance track failed", zap.String("track", track), zap.Error(err))
	return []domain.ComplianceFinding{trackFailure(track, err, refDocs)}
}

func safeRun(ctx context.Context, fn trackFunc) (findings []domain.ComplianceFinding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = fmt.Errorf("track panicked: %v", r)
		}
	}()
	return fn(ctx)
}

func trackFailure(track string, err error, refDocs int) domain.ComplianceFinding {
	f := domain.ComplianceFinding{
		ID:                     track + "-analysis-error",
		Status:                 domain.FindingStatusFailed,
		AssessmentConfidence:   0,
		PassConfidence:         0,
		ActionableSteps:        []string{"Retry the analysis", "If the problem persists, review the creative manually"},
		ReferenceDocumentsUsed: refDocs,
	}
	switch track {
	case trackImage:
		f.Name = "Image Analysis Error"
		f.Description = "The image compliance analysis could not be completed"
		f.Category = domain.CategoryLogoUsage
		f.Details = "Image analysis could not be completed. " + describeFailure(err)
	default:
		f.Name = "Text Analysis Error"
		f.Description = "The text compliance analysis could not be completed"
		f.Category = domain.CategoryLegalRequirements
		f.Details = "Text analysis could not be completed. " + describeFailure(err)
	}
	return f
}

// describeFailure turns a track error into caller-safe text.
func describeFailure(err error) string {
	var rl *generator.RateLimitError
	switch {
	case errors.As(err, &rl):
		return fmt.Sprintf("The analysis service is rate limited; try again in about %d seconds.", int(rl.RetryAfter.Seconds()))
	case errors.Is(err, context.DeadlineExceeded):
		return "The analysis service did not respond in time."
	case errors.Is(err, context.Canceled):
		return "The analysis request was cancelled."
	default:
		return "The analysis service returned an error."
	}
}

func (a *Analyzer) analyzeImages(ctx context.Context, req *domain.AnalysisRequest, composer *PromptComposer, refText string, refDocs int) ([]domain.ComplianceFinding, error) {
	if len(req.Images) == 0 {
		return notApplicable(ImageRules,
			"No image was submitted, so logo checks do not apply.",
			"Not applicable: no image was submitted.",
			refDocs)
	}

	images := make([]port.GenerateImage, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, port.GenerateImage{Data: img.Data, ContentType: img.ContentType})
	}
	out, err := a.generator.Generate(ctx, port.GenerateInput{
		Prompt: composer.ImagePrompt(refText),
		System: SystemInstruction,
		Images: images,
	})
	if err != nil {
		return nil, fmt.Errorf("generating image analysis: %w", err)
	}

	detection, section := ParseDetection(out.Text)
	if detection == DetectionNo {
		lead := section.Details
		if lead == "" {
			lead = "No logo detected in the creative."
		}
		return notApplicable(ImageRules, lead, "Not applicable: no logo was detected in the creative.", refDocs)
	}

	findings := make([]domain.ComplianceFinding, 0, len(ImageRules))
	f, err := RuleLogoDetection.Finding(section, refDocs)
	if err != nil {
		return nil, err
	}
	findings = append(findings, f)
	for _, rule := range ImageRules[1:] {
		f, err := rule.Finding(ParseSection(out.Text, rule.Keyword), refDocs)
		if err != nil {
			return nil, err
		}
		findings = append(findings, f)
	}
	return findings, nil
}

func (a *Analyzer) analyzeText(ctx context.Context, req *domain.AnalysisRequest, composer *PromptComposer, refText string, refDocs int) ([]domain.ComplianceFinding, error) {
	text := req.Text()
	if text == "" {
		return notApplicable(TextRules,
			"No ad copy was submitted, so text checks do not apply.",
			"Not applicable: no ad copy was submitted.",
			refDocs)
	}

	out, err := a.generator.Generate(ctx, port.GenerateInput{
		Prompt: composer.TextPrompt(text, refText),
		System: SystemInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("generating text analysis: %w", err)
	}

	findings := make([]domain.ComplianceFinding, 0, len(TextRules))
	for _, rule := range TextRules {
		f, err := rule.Finding(ParseSection(out.Text, rule.Keyword), refDocs)
		if err != nil {
			return nil, err
		}
		findings = append(findings, f)
	}
	return findings, nil
}
