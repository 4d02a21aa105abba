package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ComplianceFinding is one evaluated brand rule outcome for a submission.
// Findings are built fresh for every analysis and never mutated afterwards.
type ComplianceFinding struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	Status                 FindingStatus   `json:"status"`
	Description            string          `json:"description"`
	Details                string          `json:"details"`
	Category               FindingCategory `json:"category"`
	AssessmentConfidence   int             `json:"assessmentConfidence"`
	PassConfidence         int             `json:"passConfidence"`
	ActionableSteps        []string        `json:"actionableSteps"`
	ReferenceDocumentsUsed int             `json:"referenceDocumentsUsed"`
}

// Validate checks the closed enums and confidence ranges.
func (f *ComplianceFinding) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidFinding)
	}
	if !ValidFindingStatuses[f.Status] {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidFinding, f.Status)
	}
	if !ValidFindingCategories[f.Category] {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidFinding, f.Category)
	}
	if f.AssessmentConfidence < 0 || f.AssessmentConfidence > 100 {
		return fmt.Errorf("%w: assessment confidence %d out of range", ErrInvalidFinding, f.AssessmentConfidence)
	}
	if f.PassConfidence < 0 || f.PassConfidence > 100 {
		return fmt.Errorf("%w: pass confidence %d out of range", ErrInvalidFinding, f.PassConfidence)
	}
	if f.ReferenceDocumentsUsed < 0 {
		return fmt.Errorf("%w: negative reference document count", ErrInvalidFinding)
	}
	return nil
}

// NewComplianceFinding validates f and returns a copy that owns its step slice.
func NewComplianceFinding(f ComplianceFinding) (ComplianceFinding, error) {
	if err := f.Validate(); err != nil {
		return ComplianceFinding{}, err
	}
	steps := make([]string, len(f.ActionableSteps))
	copy(steps, f.ActionableSteps)
	f.ActionableSteps = steps
	return f, nil
}

// ReferenceDocument is an issuer's brand, compliance, or legal text source.
type ReferenceDocument struct {
	ID                 uuid.UUID             `db:"id" json:"id"`
	Issuer             string                `db:"issuer" json:"issuer"`
	Name               string                `db:"name" json:"name"`
	DocumentType       ReferenceDocumentType `db:"document_type" json:"documentType"`
	ContentType        string                `db:"content_type" json:"contentType"`
	StorageKey         string                `db:"storage_key" json:"-"`
	SizeBytes          int64                 `db:"size_bytes" json:"sizeBytes"`
	ExtractedText      string                `db:"extracted_text" json:"extractedText,omitempty"`
	ExtractionStatus   ExtractionStatus      `db:"extraction_status" json:"status"`
	ExtractionError    string                `db:"extraction_error" json:"extractionError,omitempty"`
	ExtractionAttempts int                   `db:"extraction_attempts" json:"-"`
	CreatedAt          time.Time             `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time             `db:"updated_at" json:"updatedAt"`
}

// ImageAsset is an opaque creative image submitted for analysis.
type ImageAsset struct {
	Name        string
	ContentType string
	Data        []byte
}

// AnalysisRequest is the input bundle for one compliance analysis.
type AnalysisRequest struct {
	Issuer      string
	Images      []ImageAsset
	PrimaryText []string
	Headlines   []string
	// Demo bypasses the analysis backend and returns the fixed demo findings.
	Demo bool
}

// Text concatenates primary text and headlines into one blob, skipping blank entries.
func (r *AnalysisRequest) Text() string {
	parts := make([]string, 0, len(r.PrimaryText)+len(r.Headlines))
	for _, s := range r.PrimaryText {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	for _, s := range r.Headlines {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// AnalysisResult is the normalized outcome of one analysis request.
type AnalysisResult struct {
	Results                     []ComplianceFinding `json:"results"`
	IsDemo                      bool                `json:"isDemo"`
	ReferenceDocumentsAvailable int                 `json:"referenceDocumentsAvailable"`
}

// AnalysisRun is a persisted analysis response kept for sharing.
type AnalysisRun struct {
	ID                          uuid.UUID       `db:"id" json:"id"`
	Issuer                      string          `db:"issuer" json:"issuer"`
	IsDemo                      bool            `db:"is_demo" json:"isDemo"`
	ImageCount                  int             `db:"image_count" json:"imageCount"`
	TextLength                  int             `db:"text_length" json:"textLength"`
	ReferenceDocumentsAvailable int             `db:"reference_documents_available" json:"referenceDocumentsAvailable"`
	Results                     json.RawMessage `db:"results" json:"results"`
	CreatedAt                   time.Time       `db:"created_at" json:"createdAt"`
}

// IssuerProfile carries the brand constants embedded into prompts for one issuer.
type IssuerProfile struct {
	Key                 string   `yaml:"-" json:"key"`
	DisplayName         string   `yaml:"display_name" json:"displayName"`
	BrandName           string   `yaml:"brand_name" json:"brandName"`
	ProductPhrase       string   `yaml:"product_phrase" json:"productPhrase"`
	LogoMinHeightPx     int      `yaml:"logo_min_height_px" json:"logoMinHeightPx"`
	ClearSpaceRatio     string   `yaml:"clear_space_ratio" json:"clearSpaceRatio"`
	BrandColors         []string `yaml:"brand_colors" json:"brandColors"`
	ProhibitedTerms     []string `yaml:"prohibited_terms" json:"prohibitedTerms"`
	RequiredDisclosures []string `yaml:"required_disclosures" json:"requiredDisclosures"`
}
