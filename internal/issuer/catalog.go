package issuer

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"cardcomply/internal/domain"
)

//go:embed issuers.yaml
var embeddedProfiles []byte

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Catalog holds the known issuer brand profiles.
type Catalog struct {
	profiles   map[string]domain.IssuerProfile
	defaultKey string
}

// Parse decodes a YAML document of issuer profiles keyed by issuer key.
func Parse(data []byte, defaultKey string) (*Catalog, error) {
	raw := map[string]domain.IssuerProfile{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding issuer catalog: %w", err)
	}

	profiles := make(map[string]domain.IssuerProfile, len(raw))
	for key, p := range raw {
		key = normalize(key)
		p.Key = key
		if p.DisplayName == "" {
			p.DisplayName = p.BrandName
		}
		if p.ProductPhrase == "" {
			p.ProductPhrase = p.BrandName + " Card"
		}
		if p.ClearSpaceRatio == "" {
			p.ClearSpaceRatio = "1/3"
		}
		if err := validate(p); err != nil {
			return nil, err
		}
		profiles[key] = p
	}

	defaultKey = normalize(defaultKey)
	if _, ok := profiles[defaultKey]; !ok {
		return nil, fmt.Errorf("issuer catalog has no profile for default issuer %q", defaultKey)
	}
	return &Catalog{profiles: profiles, defaultKey: defaultKey}, nil
}

// Load reads the catalog from path, or the built-in catalog when path is empty.
func Load(path, defaultKey string) (*Catalog, error) {
	if path == "" {
		return Parse(embeddedProfiles, defaultKey)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading issuer catalog: %w", err)
	}
	return Parse(data, defaultKey)
}

// Key normalizes a requested issuer, falling back to the default issuer when blank.
func (c *Catalog) Key(issuer string) string {
	if k := normalize(issuer); k != "" {
		return k
	}
	return c.defaultKey
}

// Profile returns the profile for issuer, or the default profile when unknown.
func (c *Catalog) Profile(issuer string) domain.IssuerProfile {
	if p, ok := c.profiles[c.Key(issuer)]; ok {
		return p
	}
	return c.profiles[c.defaultKey]
}

// Lookup returns the profile for issuer and whether it is known.
func (c *Catalog) Lookup(issuer string) (domain.IssuerProfile, bool) {
	p, ok := c.profiles[normalize(issuer)]
	return p, ok
}

// List returns all profiles ordered by key.
func (c *Catalog) List() []domain.IssuerProfile {
	out := make([]domain.IssuerProfile, 0, len(c.profiles))
	for _, p := range c.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func validate(p domain.IssuerProfile) error {
	if p.Key == "" {
		return fmt.Errorf("issuer catalog: empty issuer key")
	}
	if strings.TrimSpace(p.BrandName) == "" {
		return fmt.Errorf("issuer %q: brand_name is required", p.Key)
	}
	if p.LogoMinHeightPx <= 0 {
		return fmt.Errorf("issuer %q: logo_min_height_px must be positive", p.Key)
	}
	if len(p.BrandColors) == 0 {
		return fmt.Errorf("issuer %q: at least one brand color is required", p.Key)
	}
	for _, c := range p.BrandColors {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("issuer %q: invalid brand color %q", p.Key, c)
		}
	}
	return nil
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
