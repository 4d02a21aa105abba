// Package reference supplies completed issuer reference documents to the
// compliance analyzer.
package reference

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"cardcomply/internal/domain"
	"cardcomply/internal/port"
)

// DefaultMaxTextChars bounds the reference text embedded in one prompt.
const DefaultMaxTextChars = 60000

const truncatedMarker = "\n[Reference material truncated]"

// Provider implements port.ReferenceMaterialProvider over a document repository.
// Store failures are logged and reported as "no reference material".
type Provider struct {
	repo     port.ReferenceDocumentRepository
	logger   *zap.Logger
	maxChars int
}

// NewProvider creates a Provider. maxChars <= 0 uses DefaultMaxTextChars.
func NewProvider(repo port.ReferenceDocumentRepository, logger *zap.Logger, maxChars int) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxTextChars
	}
	return &Provider{repo: repo, logger: logger, maxChars: maxChars}
}

func (p *Provider) GetReferenceDocuments(ctx context.Context, issuer string) []domain.ReferenceDocument {
	docs, err := p.repo.ListCompletedByIssuer(ctx, issuer)
	if err != nil {
		p.logger.Warn("reference documents unavailable", zap.String("issuer", issuer), zap.Error(err))
		return []domain.ReferenceDocument{}
	}
	out := make([]domain.ReferenceDocument, 0, len(docs))
	for i := range docs {
		if docs[i].ExtractionStatus == domain.ExtractionStatusCompleted {
			out = append(out, docs[i])
		}
	}
	return out
}

// GetReferenceText renders the issuer's documents as labeled blocks, in
// repository order, truncated to the configured size.
func (p *Provider) GetReferenceText(ctx context.Context, issuer string) string {
	docs := p.GetReferenceDocuments(ctx, issuer)
	if len(docs) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, d := range docs {
		body := strings.TrimSpace(d.ExtractedText)
		if body == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "--- %s (%s) ---\n%s", d.Name, d.DocumentType, body)
	}

	text := sb.String()
	if len(text) > p.maxChars {
		p.logger.Info("reference text truncated",
			zap.String("issuer", issuer), zap.Int("chars", len(text)), zap.Int("limit", p.maxChars))
		text = truncateUTF8(text, p.maxChars) + truncatedMarker
	}
	return text
}

func (p *Provider) GetReferenceDocumentCount(ctx context.Context) int {
	n, err := p.repo.CountCompleted(ctx)
	if err != nil {
		p.logger.Warn("reference document count unavailable", zap.Error(err))
		return 0
	}
	return n
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
