package compliance

import "cardcomply/internal/domain"

// ConfidenceBaseline returns the assessment and pass confidence the demo
// fixture is scored from. Reference material raises the baseline by two
// points per additional document, capped.
func ConfidenceBaseline(referenceDocs int) (assessment, pass int) {
	if referenceDocs <= 0 {
		return 70, 65
	}
	extra := 2 * (referenceDocs - 1)
	return min(85+extra, 95), min(80+extra, 92)
}

type demoEntry struct {
	rule            Rule
	status          domain.FindingStatus
	details         string
	assessmentDelta int
	passDelta       int
}

var demoEntries = []demoEntry{
	{RuleLogoDetection, domain.FindingStatusPassed, "Issuer logo detected in the upper right corner", 5, 5},
	{RuleLogoSize, domain.FindingStatusPassed, "Logo renders at 48px height, above the 40px minimum", 0, 3},
	{RuleLogoClearSpace, domain.FindingStatusWarning, "Headline text sits close to the left edge of the logo", -5, -20},
	{RuleLogoModification, domain.FindingStatusPassed, "Logo proportions and colors appear unaltered", 0, 2},
	{RuleBrandColors, domain.FindingStatusFailed, "Background blue does not match the approved brand blue", -3, -45},
	{RuleTrademarkUsage, domain.FindingStatusWarning, "Brand name appears without the ® symbol on first mention", 2, -25},
	{RuleCopyGuidelines, domain.FindingStatusPassed, "Terminology follows the issuer copy guidelines", 0, 4},
	{RuleRegulatoryDisclosures, domain.FindingStatusFailed, "No terms-apply disclosure accompanies the offer claim", 3, -50},
	{RuleTypographyHierarchy, domain.FindingStatusPassed, "Headline, body and disclaimer follow a clear hierarchy", -2, 1},
	{RuleAccessibility, domain.FindingStatusWarning, "Disclaimer text contrast may fall below WCAG AA", -8, -15},
}

// DemoFindings returns the fixed demo fixture. Ids, order and statuses never
// change; only confidences follow the reference document baseline.
func DemoFindings(referenceDocs int) ([]domain.ComplianceFinding, error) {
	assessment, pass := ConfidenceBaseline(referenceDocs)
	out := make([]domain.ComplianceFinding, 0, len(demoEntries))
	for _, e := range demoEntries {
		f, err := e.rule.Finding(ParsedSection{
			Status:               e.status,
			AssessmentConfidence: clampConfidence(assessment + e.assessmentDelta),
			PassConfidence:       clampConfidence(pass + e.passDelta),
			Details:              e.details,
			ActionableSteps:      ActionableSteps(e.rule.Keyword, e.status, e.details),
			Found:                true,
		}, max(referenceDocs, 0))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
