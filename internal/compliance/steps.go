package compliance

import (
	"strings"

	"cardcomply/internal/domain"
)

const noActionRequired = "No action required"

var remediationSteps = map[string][]string{
	KeywordLogoDetected: {
		"Confirm whether the issuer logo is required for this placement",
		"If required, place the official logo artwork from the brand asset library",
	},
	KeywordLogoSize: {
		"Increase the logo to at least the minimum height required by the brand guidelines",
		"Export the creative at final size and re-check the rendered logo height",
	},
	KeywordClearSpace: {
		"Increase clear space around the logo to at least 1/3 of the logo height on every side",
		"Move text, imagery and edges out of the logo exclusion zone",
	},
	KeywordLogoModification: {
		"Replace the logo with the unaltered master artwork",
		"Do not stretch, rotate, recolor, outline or add effects to the logo",
		"Scale the logo proportionally only",
	},
	KeywordBrandColors: {
		"Use the exact approved brand color values for brand elements",
		"Check color values in the exported file against the brand palette",
		"Remove unapproved tints or gradients from brand elements",
	},
	KeywordTrademark: {
		"Add the ® symbol after the first mention of the brand name",
		"Use the full product name on first reference",
		"Do not use the brand name as a noun or verb",
	},
	KeywordCopyGuidelines: {
		"Replace prohibited abbreviations with the full brand name",
		"Align terminology with the issuer copy guidelines",
	},
	KeywordRegulatory: {
		"Add the required terms-apply and eligibility disclosures",
		"State rates, fees and offer conditions where the copy makes a claim",
		"Have legal review the final disclosure language",
	},
	KeywordTypography: {
		"Establish a clear hierarchy between headline, body and disclaimer text",
		"Keep disclaimer text legible at the final display size",
	},
	KeywordAccessibility: {
		"Ensure text meets WCAG 2.1 AA contrast ratios",
		"Provide alternative text for meaningful imagery",
		"Avoid conveying meaning through color alone",
	},
}

var clearSpaceSides = []string{"left", "right", "top", "bottom"}

// ActionableSteps returns the remediation checklist for a keyword and status.
// It is a pure function of its inputs.
func ActionableSteps(keyword string, status domain.FindingStatus, details string) []string {
	switch status {
	case domain.FindingStatusPassed:
		return []string{noActionRequired}
	case domain.FindingStatusWarning, domain.FindingStatusFailed:
	default:
		return []string{}
	}

	base, ok := remediationSteps[keyword]
	if !ok {
		return manualReviewSteps(keyword)
	}
	steps := make([]string, len(base), len(base)+len(clearSpaceSides))
	copy(steps, base)

	if keyword == KeywordClearSpace {
		lower := strings.ToLower(details)
		for _, side := range clearSpaceSides {
			if strings.Contains(lower, side) {
				steps = append(steps, "Increase clear space on the "+side+" side of the logo")
			}
		}
	}
	if status == domain.FindingStatusFailed {
		steps = append(steps, "Resubmit the creative for review after making changes")
	}
	return steps
}

func manualReviewSteps(keyword string) []string {
	what := "this check"
	if keyword != "" {
		what = "the " + keyword + " check"
	}
	return []string{"Manually review " + what + " against the brand guidelines"}
}
