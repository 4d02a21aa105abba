package generator

import (
	"fmt"
	"strings"

	"cardcomply/internal/config"
	"cardcomply/internal/domain"
	"cardcomply/internal/port"
)

// ProviderFactory is a function that creates a TextGenerator from a provider config.
type ProviderFactory func(cfg *config.GeneratorProviderConfig) (port.TextGenerator, error)

// registry of generator provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a generator provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewGenerator creates a TextGenerator from a provider config using the registered factory.
func NewGenerator(cfg *config.GeneratorProviderConfig) (port.TextGenerator, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown generator provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// credentialPrefixes lists the key prefix each provider issues.
var credentialPrefixes = map[string]string{
	"claude": "sk-ant-",
	"openai": "sk-",
	"gemini": "AIza",
}

const minCredentialLength = 20

// CheckCredential reports whether apiKey looks like a usable key for provider.
// The returned error wraps domain.ErrAnalysisNotConfigured.
func CheckCredential(provider, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("%w: no %s API key configured", domain.ErrAnalysisNotConfigured, provider)
	}
	if strings.TrimSpace(apiKey) != apiKey || strings.ContainsAny(apiKey, " \t\r\n") {
		return fmt.Errorf("%w: %s API key contains whitespace", domain.ErrAnalysisNotConfigured, provider)
	}
	if len(apiKey) < minCredentialLength {
		return fmt.Errorf("%w: %s API key is too short", domain.ErrAnalysisNotConfigured, provider)
	}
	if prefix, ok := credentialPrefixes[provider]; ok && !strings.HasPrefix(apiKey, prefix) {
		return fmt.Errorf("%w: %s API key must start with %q", domain.ErrAnalysisNotConfigured, provider, prefix)
	}
	return nil
}
