package compliance

import (
	"regexp"
	"strconv"
	"strings"

	"cardcomply/internal/domain"
)

const defaultConfidence = 50

// ParsedSection is the typed reading of one keyworded line of a generator response.
type ParsedSection struct {
	Status               domain.FindingStatus
	AssessmentConfidence int
	PassConfidence       int
	Details              string
	ActionableSteps      []string
	// Found is false when the response had no line for the keyword.
	Found bool
}

// ParseSection extracts the result for keyword from a free-form generator
// response. It is total: any input yields a well-formed section.
func ParseSection(responseText, keyword string) ParsedSection {
	line, ok := findLine(responseText, keyword)
	if !ok {
		return missingSection(keyword)
	}

	token, tokenEnd := verdictToken(line, keyword)
	status := domain.FindingStatusWarning
	if token != "" {
		status = tokenStatuses[token]
	}

	details := extractDetails(line, tokenEnd)
	return ParsedSection{
		Status:               status,
		AssessmentConfidence: extractConfidence(line, assessmentPattern),
		PassConfidence:       extractConfidence(line, passPattern),
		Details:              details,
		ActionableSteps:      ActionableSteps(keyword, status, details),
		Found:                true,
	}
}

// Detection is the outcome of the logo presence line.
type Detection int

const (
	DetectionUnknown Detection = iota
	DetectionYes
	DetectionNo
)

// ParseDetection reads the LOGO_DETECTED line. A YES line yields a passed
// section; a NO line yields a not-applicable section; anything else degrades
// like a missing keyword.
func ParseDetection(responseText string) (Detection, ParsedSection) {
	line, ok := findLine(responseText, KeywordLogoDetected)
	if !ok {
		return DetectionUnknown, missingSection(KeywordLogoDetected)
	}

	field, fieldStart := statusField(line, KeywordLogoDetected)
	var (
		detection Detection
		token     string
	)
	switch detectionWord(field) {
	case TokenYes:
		detection, token = DetectionYes, TokenYes
	case TokenNo:
		detection, token = DetectionNo, TokenNo
	default:
		return DetectionUnknown, ParsedSection{
			Status:          domain.FindingStatusWarning,
			Details:         strings.TrimSpace(line),
			ActionableSteps: manualReviewSteps(KeywordLogoDetected),
			Found:           true,
		}
	}

	tokenEnd := fieldStart + strings.Index(strings.ToUpper(field), token) + len(token)
	status := domain.FindingStatusPassed
	if detection == DetectionNo {
		status = domain.FindingStatusNotApplicable
	}
	details := extractDetails(line, tokenEnd)
	return detection, ParsedSection{
		Status:               status,
		AssessmentConfidence: extractConfidence(line, assessmentPattern),
		PassConfidence:       extractConfidence(line, passPattern),
		Details:              details,
		ActionableSteps:      ActionableSteps(KeywordLogoDetected, status, details),
		Found:                true,
	}
}

// detectionWord returns the first word of the status field with markdown
// emphasis and trailing punctuation removed. Only an exact YES or NO counts,
// so answers like UNKNOWN or CANNOT DETERMINE stay inconclusive.
func detectionWord(field string) string {
	words := strings.Fields(field)
	if len(words) == 0 {
		return ""
	}
	return strings.ToUpper(strings.Trim(words[0], "*_.,;:!"))
}

func missingSection(keyword string) ParsedSection {
	return ParsedSection{
		Status:               domain.FindingStatusWarning,
		AssessmentConfidence: 0,
		PassConfidence:       0,
		Details:              "The analysis response did not include a result for this check.",
		ActionableSteps:      manualReviewSteps(keyword),
	}
}

// findLine returns the first line containing "KEYWORD:".
func findLine(text, keyword string) (string, bool) {
	if keyword == "" {
		return "", false
	}
	marker := keyword + keywordSuffix
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, marker) {
			return line, true
		}
	}
	return "", false
}

// statusField returns the text between "KEYWORD:" and the next separator dash,
// along with its byte offset in line.
func statusField(line, keyword string) (string, int) {
	start := strings.Index(line, keyword+keywordSuffix) + len(keyword) + len(keywordSuffix)
	rest := line[start:]
	if i := strings.Index(rest, "-"); i >= 0 {
		rest = rest[:i]
	}
	return rest, start
}

// verdictToken finds the status token for the line and the byte offset just
// past it. The status field is consulted first so a token inside the details
// cannot override the declared status; otherwise the whole line is scanned in
// priority order.
func verdictToken(line, keyword string) (string, int) {
	field, fieldStart := statusField(line, keyword)
	for _, tok := range verdictTokens {
		if i := strings.Index(field, tok); i >= 0 {
			return tok, fieldStart + i + len(tok)
		}
	}
	for _, tok := range verdictTokens {
		if i := strings.Index(line, tok); i >= 0 {
			return tok, i + len(tok)
		}
	}
	return "", -1
}

// extractDetails captures the text between the status token and the
// assessment marker, falling back to the whole line.
func extractDetails(line string, tokenEnd int) string {
	whole := strings.TrimSpace(line)
	if tokenEnd < 0 {
		return whole
	}
	marker := strings.Index(line, assessmentLabel)
	if marker < tokenEnd {
		return whole
	}
	details := strings.Trim(line[tokenEnd:marker], " -*\t\r")
	if details == "" {
		return whole
	}
	return details
}

func extractConfidence(line string, pattern *regexp.Regexp) int {
	m := pattern.FindStringSubmatch(line)
	if len(m) < 2 {
		return defaultConfidence
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Only digits match, so the value overflowed.
		return 100
	}
	return clampConfidence(n)
}

func clampConfidence(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	default:
		return n
	}
}
