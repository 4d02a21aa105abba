package issuer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardcomply/internal/issuer"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := issuer.Load("", "amex")
	require.NoError(t, err)

	amex := c.Profile("amex")
	assert.Equal(t, "amex", amex.Key)
	assert.Equal(t, "American Express", amex.BrandName)
	assert.Equal(t, 40, amex.LogoMinHeightPx)
	assert.Equal(t, "1/3", amex.ClearSpaceRatio)
	assert.Equal(t, []string{"#006FCF", "#FFFFFF"}, amex.BrandColors)

	keys := []string{}
	for _, p := range c.List() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"amex", "mastercard", "visa"}, keys)
}

func TestCatalog_KeyAndProfileFallback(t *testing.T) {
	c, err := issuer.Load("", "amex")
	require.NoError(t, err)

	assert.Equal(t, "amex", c.Key(""))
	assert.Equal(t, "visa", c.Key("  Visa "))
	assert.Equal(t, "discover", c.Key("Discover"))
	assert.Equal(t, "amex", c.Profile("discover").Key)

	_, ok := c.Lookup("discover")
	assert.False(t, ok)
	p, ok := c.Lookup("MASTERCARD")
	assert.True(t, ok)
	assert.Equal(t, "Mastercard", p.BrandName)
}

func TestParse_Defaults(t *testing.T) {
	c, err := issuer.Parse([]byte(`
acme:
  brand_name: Acme
  logo_min_height_px: 32
  brand_colors: ["#112233"]
`), "acme")
	require.NoError(t, err)

	p := c.Profile("acme")
	assert.Equal(t, "Acme", p.DisplayName)
	assert.Equal(t, "Acme Card", p.ProductPhrase)
	assert.Equal(t, "1/3", p.ClearSpaceRatio)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		def  string
	}{
		{"malformed yaml", "acme: [", "acme"},
		{"missing default", "acme:\n  brand_name: Acme\n  logo_min_height_px: 10\n  brand_colors: ['#112233']\n", "other"},
		{"missing brand name", "acme:\n  logo_min_height_px: 10\n  brand_colors: ['#112233']\n", "acme"},
		{"bad height", "acme:\n  brand_name: Acme\n  logo_min_height_px: 0\n  brand_colors: ['#112233']\n", "acme"},
		{"bad color", "acme:\n  brand_name: Acme\n  logo_min_height_px: 10\n  brand_colors: ['blue']\n", "acme"},
		{"no colors", "acme:\n  brand_name: Acme\n  logo_min_height_px: 10\n", "acme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Parse([]byte(tt.yaml), tt.def)
			assert.Error(t, err)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issuers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("acme:\n  brand_name: Acme\n  logo_min_height_px: 10\n  brand_colors: ['#112233']\n"), 0o600))

	c, err := issuer.Load(path, "ACME")
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Profile("").BrandName)

	_, err = issuer.Load(filepath.Join(t.TempDir(), "missing.yaml"), "acme")
	assert.Error(t, err)
}
