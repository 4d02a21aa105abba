package compliance

import (
	"fmt"
	"strings"

	"cardcomply/internal/domain"
)

// SystemInstruction is sent with every analysis prompt.
const SystemInstruction = "You are a meticulous brand compliance reviewer for credit card marketing. " +
	"You answer only in the requested line format and always commit to a definitive status."

const (
	referenceHeader = "=== OFFICIAL REFERENCE DOCUMENTS ==="
	referenceFooter = "=== END OF OFFICIAL REFERENCE DOCUMENTS ==="
)

// PromptComposer renders analysis prompts for one issuer brand profile.
type PromptComposer struct {
	profile domain.IssuerProfile
}

// NewPromptComposer creates a composer bound to profile.
func NewPromptComposer(profile domain.IssuerProfile) *PromptComposer {
	return &PromptComposer{profile: profile}
}

// ImagePrompt composes the prompt for judging a creative image.
func (c *PromptComposer) ImagePrompt(referenceText string) string {
	p := c.profile
	var b strings.Builder

	fmt.Fprintf(&b, "You are reviewing advertising creative for %s. Analyze the attached image for compliance with the %s logo and brand guidelines.\n\n",
		p.DisplayName, p.BrandName)
	b.WriteString(definitiveStatusRule)

	b.WriteString("Evaluate these aspects:\n")
	fmt.Fprintf(&b, "1. Logo presence: is the %s logo visible anywhere in the creative?\n", p.BrandName)
	fmt.Fprintf(&b, "2. Logo size: the logo must be at least %dpx tall.\n", p.LogoMinHeightPx)
	fmt.Fprintf(&b, "3. Clear space: the space around the logo must be at least %s of the logo height on each side (left, right, top, bottom).\n", p.ClearSpaceRatio)
	b.WriteString("4. Logo integrity: the logo must keep its original proportions and must not be stretched, rotated, recolored, outlined or otherwise modified.\n")
	fmt.Fprintf(&b, "5. Brand colors: brand elements must use the approved colors %s.\n\n", joinOr(p.BrandColors))

	b.WriteString("Respond with exactly one line per aspect, in this order and format:\n")
	b.WriteString(lineTemplate(KeywordLogoDetected, TokenYes, TokenNo) + "\n")
	for _, r := range ImageRules[1:] {
		b.WriteString(lineTemplate(r.Keyword, TokenPass, TokenWarning, TokenFail) + "\n")
	}
	b.WriteString(confidenceLegend)

	c.writeReferences(&b, referenceText)
	return b.String()
}

// TextPrompt composes the prompt for judging ad copy.
func (c *PromptComposer) TextPrompt(text, referenceText string) string {
	p := c.profile
	var b strings.Builder

	fmt.Fprintf(&b, "You are reviewing advertising copy for %s. Analyze the copy below for compliance with the %s brand, legal and regulatory guidelines.\n\n",
		p.DisplayName, p.BrandName)
	b.WriteString(definitiveStatusRule)

	fmt.Fprintf(&b, "Ad copy:\n\"\"\"\n%s\n\"\"\"\n\n", text)

	b.WriteString("Evaluate these aspects:\n")
	fmt.Fprintf(&b, "1. Trademark: the ® symbol must follow the first mention of %s, and the full phrase \"%s\" should be used on first reference.\n",
		p.BrandName, p.ProductPhrase)
	if len(p.ProhibitedTerms) > 0 {
		fmt.Fprintf(&b, "2. Copy guidelines: terminology must follow the brand copy rules; do not use the abbreviations %s.\n", joinQuoted(p.ProhibitedTerms))
	} else {
		b.WriteString("2. Copy guidelines: terminology and abbreviations must follow the brand copy rules.\n")
	}
	if len(p.RequiredDisclosures) > 0 {
		fmt.Fprintf(&b, "3. Regulatory: required disclosures must be present (%s).\n", strings.Join(p.RequiredDisclosures, "; "))
	} else {
		b.WriteString("3. Regulatory: required financial disclosures must be present for any offer claim.\n")
	}
	b.WriteString("4. Typography: headline, body and disclaimer text must follow a clear hierarchy.\n")
	b.WriteString("5. Accessibility: copy must be readable and meet WCAG 2.1 AA expectations.\n\n")

	b.WriteString("Respond with exactly one line per aspect, in this order and format:\n")
	for _, r := range TextRules {
		b.WriteString(lineTemplate(r.Keyword, TokenPass, TokenWarning, TokenFail) + "\n")
	}
	b.WriteString(confidenceLegend)

	c.writeReferences(&b, referenceText)
	return b.String()
}

const definitiveStatusRule = "Every aspect MUST receive a definitive status. Never answer \"unclear\", \"inconclusive\" or \"cannot determine\"; " +
	"when the evidence is limited, choose the most likely status and lower the Assessment confidence instead.\n\n"

const confidenceLegend = "\nAssessment is how reliably you can judge the aspect from the material provided. " +
	"Pass is how likely the creative satisfies the rule. Report both as whole percentages.\n"

func (c *PromptComposer) writeReferences(b *strings.Builder, referenceText string) {
	if strings.TrimSpace(referenceText) == "" {
		fmt.Fprintf(b, "\nNote: no official reference documents are available for %s. Base the review on general %s brand standards.\n",
			c.profile.DisplayName, c.profile.BrandName)
		return
	}
	b.WriteString("\n" + referenceHeader + "\n")
	b.WriteString(strings.TrimSpace(referenceText))
	b.WriteString("\n" + referenceFooter + "\n")
	b.WriteString("The official reference documents above are the primary source of truth. Where they differ from general knowledge, follow the reference documents.\n")
}

func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return "from the brand palette"
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
	}
}

func joinQuoted(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = `"` + s + `"`
	}
	return strings.Join(quoted, ", ")
}
