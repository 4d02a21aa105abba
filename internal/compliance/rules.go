package compliance

import (
	"fmt"

	"cardcomply/internal/domain"
)

// Rule is one brand rule evaluated by the analyzer.
type Rule struct {
	ID          string
	Name        string
	Description string
	Category    domain.FindingCategory
	Keyword     string
}

var (
	RuleLogoDetection = Rule{
		ID:          "logo-detection",
		Name:        "Logo Detection",
		Description: "Checks whether the issuer logo appears in the creative",
		Category:    domain.CategoryLogoUsage,
		Keyword:     KeywordLogoDetected,
	}
	RuleLogoSize = Rule{
		ID:          "logo-size",
		Name:        "Logo Minimum Size",
		Description: "Checks the logo meets the minimum rendered height",
		Category:    domain.CategoryLogoUsage,
		Keyword:     KeywordLogoSize,
	}
	RuleLogoClearSpace = Rule{
		ID:          "logo-clear-space",
		Name:        "Logo Clear Space",
		Description: "Checks the clear space kept free around the logo",
		Category:    domain.CategoryLogoUsage,
		Keyword:     KeywordClearSpace,
	}
	RuleLogoModification = Rule{
		ID:          "logo-modification",
		Name:        "Logo Integrity",
		Description: "Checks the logo is used without distortion or modification",
		Category:    domain.CategoryDesignStandards,
		Keyword:     KeywordLogoModification,
	}
	RuleBrandColors = Rule{
		ID:          "brand-colors",
		Name:        "Brand Color Accuracy",
		Description: "Checks brand elements use the approved color palette",
		Category:    domain.CategoryColorPalette,
		Keyword:     KeywordBrandColors,
	}

	RuleTrademarkUsage = Rule{
		ID:          "trademark-usage",
		Name:        "Trademark Usage",
		Description: "Checks trademark symbols and brand name usage in copy",
		Category:    domain.CategoryLegalRequirements,
		Keyword:     KeywordTrademark,
	}
	RuleCopyGuidelines = Rule{
		ID:          "copy-guidelines",
		Name:        "Copy Guidelines",
		Description: "Checks terminology and abbreviation rules in copy",
		Category:    domain.CategoryDesignStandards,
		Keyword:     KeywordCopyGuidelines,
	}
	RuleRegulatoryDisclosures = Rule{
		ID:          "regulatory-disclosures",
		Name:        "Regulatory Disclosures",
		Description: "Checks required financial disclosures are present",
		Category:    domain.CategoryIndustryRegulations,
		Keyword:     KeywordRegulatory,
	}
	RuleTypographyHierarchy = Rule{
		ID:          "typography-hierarchy",
		Name:        "Typography Hierarchy",
		Description: "Checks the typographic hierarchy of the copy",
		Category:    domain.CategoryDesignStandards,
		Keyword:     KeywordTypography,
	}
	RuleAccessibility = Rule{
		ID:          "accessibility",
		Name:        "Accessibility",
		Description: "Checks readability and accessibility of the creative copy",
		Category:    domain.CategoryAccessibilityCompliance,
		Keyword:     KeywordAccessibility,
	}
)

// ImageRules are evaluated by the image track, detection first.
var ImageRules = []Rule{
	RuleLogoDetection,
	RuleLogoSize,
	RuleLogoClearSpace,
	RuleLogoModification,
	RuleBrandColors,
}

// TextRules are evaluated by the text track.
var TextRules = []Rule{
	RuleTrademarkUsage,
	RuleCopyGuidelines,
	RuleRegulatoryDisclosures,
	RuleTypographyHierarchy,
	RuleAccessibility,
}

// Finding builds a validated finding for the rule from a parsed section.
func (r Rule) Finding(s ParsedSection, referenceDocs int) (domain.ComplianceFinding, error) {
	f, err := domain.NewComplianceFinding(domain.ComplianceFinding{
		ID:                     r.ID,
		Name:                   r.Name,
		Status:                 s.Status,
		Description:            r.Description,
		Details:                s.Details,
		Category:               r.Category,
		AssessmentConfidence:   s.AssessmentConfidence,
		PassConfidence:         s.PassConfidence,
		ActionableSteps:        s.ActionableSteps,
		ReferenceDocumentsUsed: referenceDocs,
	})
	if err != nil {
		return domain.ComplianceFinding{}, fmt.Errorf("building %s finding: %w", r.ID, err)
	}
	return f, nil
}

func notApplicableSection(details string) ParsedSection {
	return ParsedSection{
		Status:               domain.FindingStatusNotApplicable,
		AssessmentConfidence: 100,
		PassConfidence:       100,
		Details:              details,
		ActionableSteps:      []string{},
		Found:                true,
	}
}

// notApplicable marks every rule not applicable. The first rule gets
// leadDetails, the rest get companionDetails.
func notApplicable(rules []Rule, leadDetails, companionDetails string, referenceDocs int) ([]domain.ComplianceFinding, error) {
	out := make([]domain.ComplianceFinding, 0, len(rules))
	for i, r := range rules {
		details := companionDetails
		if i == 0 {
			details = leadDetails
		}
		f, err := r.Finding(notApplicableSection(details), referenceDocs)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
