// Package extract turns uploaded reference files into plain text for prompts.
package extract

import (
	"fmt"
	"strings"

	"cardcomply/internal/domain"
)

// Extractor converts raw file bytes into prompt-ready text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// ForContentType returns the extractor for a reference document MIME type.
func ForContentType(contentType string) (Extractor, error) {
	mt := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	switch mt {
	case "text/plain", "text/markdown":
		return PlainText{}, nil
	case "text/html":
		return NewHTML(), nil
	case domain.AllowedReferenceContentTypes["xlsx"]:
		return Spreadsheet{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, contentType)
	}
}

// Text extracts data with the extractor registered for contentType.
func Text(contentType string, data []byte) (string, error) {
	ex, err := ForContentType(contentType)
	if err != nil {
		return "", err
	}
	text, err := ex.Extract(data)
	if err != nil {
		return "", err
	}
	text = normalize(text)
	if text == "" {
		return "", fmt.Errorf("no text content found")
	}
	return text, nil
}

// normalize unifies line endings and collapses runs of blank lines.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, l := range lines {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
