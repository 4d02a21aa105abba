package compliance_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardcomply/internal/compliance"
	"cardcomply/internal/domain"
)

func TestParseSection_WellFormedLine(t *testing.T) {
	text := "Some preamble\nWIDGET: PASS - all good - Assessment: 82% - Pass: 77%\n"

	s := compliance.ParseSection(text, "WIDGET")

	assert.True(t, s.Found)
	assert.Equal(t, domain.FindingStatusPassed, s.Status)
	assert.Equal(t, 82, s.AssessmentConfidence)
	assert.Equal(t, 77, s.PassConfidence)
	assert.Equal(t, "all good", s.Details)
	assert.Equal(t, []string{"No action required"}, s.ActionableSteps)
}

func TestParseSection_MissingKeyword(t *testing.T) {
	s := compliance.ParseSection("LOGO_SIZE: PASS - ok - Assessment: 90% - Pass: 90%", "NONEXISTENT")

	assert.False(t, s.Found)
	assert.Equal(t, domain.FindingStatusWarning, s.Status)
	assert.Equal(t, 0, s.AssessmentConfidence)
	assert.Equal(t, 0, s.PassConfidence)
	require.NotEmpty(t, s.ActionableSteps)
	assert.Contains(t, s.ActionableSteps[0], "Manually review")
}

func TestParseSection_Statuses(t *testing.T) {
	tests := []struct {
		name string
		line string
		want domain.FindingStatus
	}{
		{"pass", "TRADEMARK: PASS - fine - Assessment: 90% - Pass: 95%", domain.FindingStatusPassed},
		{"fail", "TRADEMARK: FAIL - missing - Assessment: 90% - Pass: 10%", domain.FindingStatusFailed},
		{"warning", "TRADEMARK: WARNING - unclear - Assessment: 60% - Pass: 40%", domain.FindingStatusWarning},
		{"no token defaults to warning", "TRADEMARK: looks ok - Assessment: 60% - Pass: 40%", domain.FindingStatusWarning},
		{"status field beats details", "TRADEMARK: WARNING - would PASS with the symbol - Assessment: 80% - Pass: 50%", domain.FindingStatusWarning},
		{"priority when no status field", "TRADEMARK: - WARNING and FAIL and PASS", domain.FindingStatusPassed},
		{"fail beats warning", "TRADEMARK: verdict - WARNING then FAIL", domain.FindingStatusFailed},
		{"bold markdown", "**TRADEMARK:** FAIL - missing ® - Assessment: 88% - Pass: 12%", domain.FindingStatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := compliance.ParseSection(tt.line, compliance.KeywordTrademark)
			assert.Equal(t, tt.want, s.Status)
		})
	}
}

func TestParseSection_DeclaredStatusBeatsDetails(t *testing.T) {
	declared := compliance.ParseSection("WIDGET: WARNING - would PASS if resized - Assessment: 70% - Pass: 60%", "WIDGET")
	assert.Equal(t, domain.FindingStatusWarning, declared.Status)
	assert.Equal(t, "would PASS if resized", declared.Details)

	undeclared := compliance.ParseSection("WIDGET: - would PASS if resized, WARNING otherwise", "WIDGET")
	assert.Equal(t, domain.FindingStatusPassed, undeclared.Status)
}

func TestParseSection_Confidences(t *testing.T) {
	tests := []struct {
		name           string
		line           string
		wantAssessment int
		wantPass       int
	}{
		{"both present", "X: PASS - d - Assessment: 12% - Pass: 34%", 12, 34},
		{"defaults when absent", "X: PASS - d", 50, 50},
		{"no space after colon", "X: PASS - d - Assessment:70% - Pass:65%", 70, 65},
		{"clamped above 100", "X: PASS - d - Assessment: 250% - Pass: 101%", 100, 100},
		{"overflow clamps to 100", "X: PASS - d - Assessment: 99999999999999999999999% - Pass: 5%", 100, 5},
		{"missing percent sign", "X: PASS - d - Assessment: 70 - Pass: 65", 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := compliance.ParseSection(tt.line, "X")
			assert.Equal(t, tt.wantAssessment, s.AssessmentConfidence)
			assert.Equal(t, tt.wantPass, s.PassConfidence)
		})
	}
}

func TestParseSection_DetailsFallBackToLine(t *testing.T) {
	line := "REGULATORY: FAIL no separators and no markers"

	s := compliance.ParseSection("  "+line+"  ", compliance.KeywordRegulatory)

	assert.Equal(t, domain.FindingStatusFailed, s.Status)
	assert.Equal(t, line, s.Details)
}

func TestParseSection_UsesFirstMatchingLine(t *testing.T) {
	text := strings.Join([]string{
		"TYPOGRAPHY: FAIL - first - Assessment: 10% - Pass: 10%",
		"TYPOGRAPHY: PASS - second - Assessment: 90% - Pass: 90%",
	}, "\n")

	s := compliance.ParseSection(text, compliance.KeywordTypography)

	assert.Equal(t, domain.FindingStatusFailed, s.Status)
	assert.Equal(t, "first", s.Details)
}

func TestParseSection_TotalOverArbitraryInput(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"X:",
		"X: - - - Assessment: % - Pass: %",
		"X: Assessment: 10% PASS",
		"X:PASSFAILWARNING",
		"Assessment: 40% X: FAIL",
		strings.Repeat("X: ", 1000),
		"X: \x00\xff\xfe PASS",
	}
	keywords := []string{"X", "", "NONEXISTENT", "Assessment"}

	for _, in := range inputs {
		for _, kw := range keywords {
			assert.NotPanics(t, func() {
				s := compliance.ParseSection(in, kw)
				assert.True(t, domain.ValidFindingStatuses[s.Status])
				assert.GreaterOrEqual(t, s.AssessmentConfidence, 0)
				assert.LessOrEqual(t, s.AssessmentConfidence, 100)
				assert.GreaterOrEqual(t, s.PassConfidence, 0)
				assert.LessOrEqual(t, s.PassConfidence, 100)
				assert.NotNil(t, s.ActionableSteps)
			})
		}
	}
}

func FuzzParseSection(f *testing.F) {
	f.Add("WIDGET: PASS - all good - Assessment: 82% - Pass: 77%", "WIDGET")
	f.Add("LOGO_DETECTED: NO - none", "LOGO_DETECTED")
	f.Add("", "")
	f.Fuzz(func(t *testing.T, text, keyword string) {
		s := compliance.ParseSection(text, keyword)
		if s.AssessmentConfidence < 0 || s.AssessmentConfidence > 100 {
			t.Fatalf("assessment confidence out of range: %d", s.AssessmentConfidence)
		}
		if s.PassConfidence < 0 || s.PassConfidence > 100 {
			t.Fatalf("pass confidence out of range: %d", s.PassConfidence)
		}
		if !domain.ValidFindingStatuses[s.Status] {
			t.Fatalf("invalid status %q", s.Status)
		}
	})
}

func TestParseDetection(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		want       compliance.Detection
		wantStatus domain.FindingStatus
	}{
		{"yes", "LOGO_DETECTED: YES - logo top right - Assessment: 95% - Pass: 90%", compliance.DetectionYes, domain.FindingStatusPassed},
		{"no", "LOGO_DETECTED: NO - no logo present - Assessment: 92% - Pass: 100%", compliance.DetectionNo, domain.FindingStatusNotApplicable},
		{"missing", "LOGO_SIZE: PASS - ok", compliance.DetectionUnknown, domain.FindingStatusWarning},
		{"neither token", "LOGO_DETECTED: maybe - hard to say", compliance.DetectionUnknown, domain.FindingStatusWarning},
		{"unknown contains NO", "LOGO_DETECTED: UNKNOWN - image too blurry - Assessment: 20% - Pass: 50%", compliance.DetectionUnknown, domain.FindingStatusWarning},
		{"cannot determine", "LOGO_DETECTED: CANNOT DETERMINE - cropped", compliance.DetectionUnknown, domain.FindingStatusWarning},
		{"none is not no", "LOGO_DETECTED: NONE VISIBLE - dark frame", compliance.DetectionUnknown, domain.FindingStatusWarning},
		{"bold yes", "LOGO_DETECTED: **YES** - logo bottom left", compliance.DetectionYes, domain.FindingStatusPassed},
		{"lowercase no", "LOGO_DETECTED: no - plain background", compliance.DetectionNo, domain.FindingStatusNotApplicable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, s := compliance.ParseDetection(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStatus, s.Status)
		})
	}
}

func TestParseDetection_InconclusiveHasNoConfidence(t *testing.T) {
	_, s := compliance.ParseDetection("LOGO_DETECTED: UNKNOWN - image too blurry - Assessment: 20% - Pass: 50%")

	assert.Equal(t, 0, s.AssessmentConfidence)
	assert.Equal(t, 0, s.PassConfidence)
	assert.NotEmpty(t, s.ActionableSteps)
}

func TestParseDetection_LowercaseNoKeepsDetails(t *testing.T) {
	_, s := compliance.ParseDetection("LOGO_DETECTED: no - plain background - Assessment: 90% - Pass: 100%")

	assert.Equal(t, "plain background", s.Details)
}

func TestParseDetection_YesCarriesConfidences(t *testing.T) {
	_, s := compliance.ParseDetection("LOGO_DETECTED: YES - logo top right - Assessment: 95% - Pass: 90%")

	assert.Equal(t, 95, s.AssessmentConfidence)
	assert.Equal(t, 90, s.PassConfidence)
	assert.Equal(t, "logo top right", s.Details)
}

func TestFormatLine_RoundTrips(t *testing.T) {
	line := compliance.FormatLine(compliance.KeywordBrandColors, compliance.TokenFail, "off-brand blue", 81, 22)

	s := compliance.ParseSection(line, compliance.KeywordBrandColors)

	assert.Equal(t, "BRAND_COLORS: FAIL - off-brand blue - Assessment: 81% - Pass: 22%", line)
	assert.Equal(t, domain.FindingStatusFailed, s.Status)
	assert.Equal(t, 81, s.AssessmentConfidence)
	assert.Equal(t, 22, s.PassConfidence)
	assert.Equal(t, "off-brand blue", s.Details)
}
