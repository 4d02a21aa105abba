package compliance

import (
	"fmt"
	"regexp"
	"strings"

	"cardcomply/internal/domain"
)

// The response line grammar is shared by the prompt composer (which renders it
// as the output contract) and the section parser (which reads it back):
//
//	KEYWORD: STATUS - details - Assessment: N% - Pass: N%

// Status tokens.
const (
	TokenPass    = "PASS"
	TokenWarning = "WARNING"
	TokenFail    = "FAIL"
	TokenYes     = "YES"
	TokenNo      = "NO"
)

// Aspect keywords.
const (
	KeywordLogoDetected     = "LOGO_DETECTED"
	KeywordLogoSize         = "LOGO_SIZE"
	KeywordClearSpace       = "CLEAR_SPACE"
	KeywordLogoModification = "LOGO_MODIFICATION"
	KeywordBrandColors      = "BRAND_COLORS"
	KeywordTrademark        = "TRADEMARK"
	KeywordCopyGuidelines   = "COPY_GUIDELINES"
	KeywordRegulatory       = "REGULATORY"
	KeywordTypography       = "TYPOGRAPHY"
	KeywordAccessibility    = "ACCESSIBILITY"
)

const (
	keywordSuffix   = ":"
	fieldSeparator  = " - "
	assessmentLabel = "Assessment:"
	passLabel       = "Pass:"
)

var (
	assessmentPattern = regexp.MustCompile(regexp.QuoteMeta(assessmentLabel) + `\s*(\d+)%`)
	passPattern       = regexp.MustCompile(regexp.QuoteMeta(passLabel) + `\s*(\d+)%`)
)

// verdictTokens are the judgment tokens in search priority order.
var verdictTokens = []string{TokenPass, TokenFail, TokenWarning}

var tokenStatuses = map[string]domain.FindingStatus{
	TokenPass:    domain.FindingStatusPassed,
	TokenFail:    domain.FindingStatusFailed,
	TokenWarning: domain.FindingStatusWarning,
}

// lineTemplate renders the output contract for one keyword.
func lineTemplate(keyword string, tokens ...string) string {
	return keyword + keywordSuffix + " [" + strings.Join(tokens, "/") + "]" +
		fieldSeparator + "[specific details]" +
		fieldSeparator + assessmentLabel + " [0-100]%" +
		fieldSeparator + passLabel + " [0-100]%"
}

// FormatLine renders one concrete response line in the grammar.
func FormatLine(keyword, token, details string, assessment, pass int) string {
	return fmt.Sprintf("%s%s %s%s%s%s%s %d%%%s%s %d%%",
		keyword, keywordSuffix, token,
		fieldSeparator, details,
		fieldSeparator, assessmentLabel, assessment,
		fieldSeparator, passLabel, pass)
}
