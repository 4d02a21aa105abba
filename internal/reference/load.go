package reference

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cardcomply/internal/domain"
	"cardcomply/internal/extract"
	"cardcomply/internal/port"
)

// LoadDir extracts every supported file in dir and stores it as a completed
// reference document for issuer. Files named with "legal" or "rules" are
// typed accordingly; everything else is a brand guideline.
func LoadDir(ctx context.Context, repo port.ReferenceDocumentRepository, dir, issuer string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading reference directory: %w", err)
	}

	loaded := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(e.Name())), ".")
		contentType, ok := domain.AllowedReferenceContentTypes[ext]
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return loaded, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		text, err := extract.Text(contentType, data)
		if err != nil {
			return loaded, fmt.Errorf("extracting %s: %w", e.Name(), err)
		}
		doc := &domain.ReferenceDocument{
			Issuer:           issuer,
			Name:             e.Name(),
			DocumentType:     documentTypeFor(e.Name()),
			ContentType:      contentType,
			SizeBytes:        int64(len(data)),
			ExtractedText:    text,
			ExtractionStatus: domain.ExtractionStatusCompleted,
		}
		if err := repo.Create(ctx, doc); err != nil {
			return loaded, fmt.Errorf("storing %s: %w", e.Name(), err)
		}
		loaded++
	}
	return loaded, nil
}

func documentTypeFor(name string) domain.ReferenceDocumentType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "legal"):
		return domain.DocumentTypeLegalRequirements
	case strings.Contains(lower, "rules"), strings.Contains(lower, "compliance"):
		return domain.DocumentTypeComplianceRules
	default:
		return domain.DocumentTypeBrandGuidelines
	}
}
