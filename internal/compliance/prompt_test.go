package compliance_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardcomply/internal/compliance"
	"cardcomply/internal/issuer"
)

func amexComposer(t *testing.T) *compliance.PromptComposer {
	t.Helper()
	catalog, err := issuer.Load("", "amex")
	require.NoError(t, err)
	return compliance.NewPromptComposer(catalog.Profile("amex"))
}

func TestImagePrompt_Contract(t *testing.T) {
	p := amexComposer(t).ImagePrompt("")

	assert.Contains(t, p, "American Express")
	assert.Contains(t, p, "40px")
	assert.Contains(t, p, "1/3 of the logo height")
	assert.Contains(t, p, "#006FCF or #FFFFFF")
	assert.Contains(t, p, "definitive status")
	assert.Contains(t, p, "LOGO_DETECTED: [YES/NO]")
	for _, r := range compliance.ImageRules[1:] {
		assert.Contains(t, p, r.Keyword+": [PASS/WARNING/FAIL] - [specific details] - Assessment: [0-100]% - Pass: [0-100]%")
	}
	assert.Contains(t, p, "no official reference documents are available")
	assert.NotContains(t, p, "OFFICIAL REFERENCE DOCUMENTS ===")
}

func TestImagePrompt_KeywordOrder(t *testing.T) {
	p := amexComposer(t).ImagePrompt("")

	last := -1
	for _, r := range compliance.ImageRules {
		i := strings.Index(p, r.Keyword+":")
		require.GreaterOrEqual(t, i, 0, r.Keyword)
		assert.Greater(t, i, last, r.Keyword)
		last = i
	}
}

func TestTextPrompt_EmbedsCopyAndRules(t *testing.T) {
	p := amexComposer(t).TextPrompt("Use American Express for purchases.", "")

	assert.Contains(t, p, "Use American Express for purchases.")
	assert.Contains(t, p, "® symbol")
	assert.Contains(t, p, `"American Express Card"`)
	assert.Contains(t, p, `"AmEx"`)
	assert.Contains(t, p, "Terms apply")
	for _, r := range compliance.TextRules {
		assert.Contains(t, p, r.Keyword+": [PASS/WARNING/FAIL]")
	}
}

func TestPrompts_ReferenceSection(t *testing.T) {
	c := amexComposer(t)
	ref := "--- Brand Book (brand-guidelines) ---\nLogo must sit on Bright Blue."

	for _, p := range []string{c.ImagePrompt(ref), c.TextPrompt("copy", ref)} {
		head := strings.Index(p, "=== OFFICIAL REFERENCE DOCUMENTS ===")
		body := strings.Index(p, "Logo must sit on Bright Blue.")
		foot := strings.Index(p, "=== END OF OFFICIAL REFERENCE DOCUMENTS ===")
		require.GreaterOrEqual(t, head, 0)
		assert.Greater(t, body, head)
		assert.Greater(t, foot, body)
		assert.Contains(t, p, "primary source of truth")
		assert.NotContains(t, p, "no official reference documents are available")
	}
}

func TestPrompts_FollowIssuerProfile(t *testing.T) {
	catalog, err := issuer.Load("", "amex")
	require.NoError(t, err)

	p := compliance.NewPromptComposer(catalog.Profile("visa")).ImagePrompt("")

	assert.Contains(t, p, "#1A1F71 or #F7B600")
	assert.NotContains(t, p, "American Express")
}
