// Package providers registers the built-in text generator providers.
package providers

import (
	"cardcomply/internal/config"
	"cardcomply/internal/generator"
	"cardcomply/internal/generator/claude"
	"cardcomply/internal/generator/gemini"
	"cardcomply/internal/generator/openai"
	"cardcomply/internal/port"
)

// RegisterAll registers the claude, gemini, and openai factories.
func RegisterAll() {
	generator.RegisterProvider("claude", func(cfg *config.GeneratorProviderConfig) (port.TextGenerator, error) {
		return claude.NewGenerator(cfg), nil
	})
	generator.RegisterProvider("gemini", func(cfg *config.GeneratorProviderConfig) (port.TextGenerator, error) {
		return gemini.NewGenerator(cfg), nil
	})
	generator.RegisterProvider("openai", func(cfg *config.GeneratorProviderConfig) (port.TextGenerator, error) {
		return openai.NewGenerator(cfg), nil
	})
}
