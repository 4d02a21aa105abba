package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardcomply/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 9)
	assert.Equal(t, "Rule ID", row[0])
	assert.Equal(t, "Status", row[3])
	assert.Equal(t, "Reference Documents Used", row[8])
}

func TestWriteFindings(t *testing.T) {
	findings := []domain.ComplianceFinding{
		{
			ID:                     "logo-size",
			Name:                   "Logo Size",
			Status:                 domain.FindingStatusFailed,
			Category:               domain.CategoryLogoUsage,
			Details:                "Logo is 28px, below the minimum, \"too small\"",
			AssessmentConfidence:   92,
			PassConfidence:         10,
			ActionableSteps:        []string{"Increase logo height", "Re-export at 2x"},
			ReferenceDocumentsUsed: 2,
		},
		{
			ID:              "trademark",
			Name:            "Trademark Symbol",
			Status:          domain.FindingStatusPassed,
			Category:        domain.CategoryLegalRequirements,
			ActionableSteps: []string{"No action required"},
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteFindings(findings))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"logo-size", "Logo Size", "logoUsage", "failed", "92%", "10%",
		"Logo is 28px, below the minimum, \"too small\"",
		"Increase logo height | Re-export at 2x", "2",
	}, rows[0])
	assert.Equal(t, "passed", rows[1][3])
	assert.Equal(t, "0%", rows[1][4])
	assert.Equal(t, "No action required", rows[1][7])
}

func TestWriteAll_PrefixesBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAll(&buf, []domain.ComplianceFinding{{ID: "x", Status: domain.FindingStatusWarning}}))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, BOM))

	rows, err := csv.NewReader(bytes.NewReader(out[len(BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "warning", rows[1][3])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "American Express", "American_Express"},
		{"special chars", "Q3 / Spring (Promo)", "Q3_Spring_Promo"},
		{"hyphens and underscores preserved", "amex-gold_2025", "amex-gold_2025"},
		{"consecutive underscores collapsed", "test___issuer", "test_issuer"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	at := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "amex_compliance_2025-03-09.csv", BuildFilename("amex", at))
	assert.Equal(t, "analysis_compliance_2025-03-09.csv", BuildFilename("///", at))
}
