package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cardcomply/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Rule ID",
	"Rule",
	"Category",
	"Status",
	"Assessment Confidence",
	"Pass Confidence",
	"Details",
	"Actionable Steps",
	"Reference Documents Used",
}

// stepSeparator joins actionable steps inside a single cell.
const stepSeparator = " | "

// Writer wraps csv.Writer for exporting compliance findings as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteFindings converts findings to CSV rows and writes them in order.
func (w *Writer) WriteFindings(findings []domain.ComplianceFinding) error {
	for i := range findings {
		if err := w.csv.Write(findingToRow(&findings[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteAll writes the BOM, header and findings to out and flushes.
func WriteAll(out io.Writer, findings []domain.ComplianceFinding) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteFindings(findings); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func findingToRow(f *domain.ComplianceFinding) []string {
	return []string{
		f.ID,
		f.Name,
		string(f.Category),
		string(f.Status),
		formatPercent(f.AssessmentConfidence),
		formatPercent(f.PassConfidence),
		f.Details,
		strings.Join(f.ActionableSteps, stepSeparator),
		strconv.Itoa(f.ReferenceDocumentsUsed),
	}
}

func formatPercent(v int) string {
	return strconv.Itoa(v) + "%"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for an exported analysis.
// Format: {issuer}_compliance_{YYYY-MM-DD}.csv
func BuildFilename(issuer string, at time.Time) string {
	sanitized := SanitizeFilename(issuer)
	if sanitized == "" {
		sanitized = "analysis"
	}
	return fmt.Sprintf("%s_compliance_%s.csv", sanitized, at.Format("2006-01-02"))
}
