package port

import "context"

// GenerateImage is an inline image attached to a generation request.
type GenerateImage struct {
	Data        []byte
	ContentType string
}

// GenerateInput carries one prompt for a text generator.
type GenerateInput struct {
	Prompt string
	System string
	Images []GenerateImage
}

// GenerateOutput is the free-form text produced by the generator.
type GenerateOutput struct {
	Text      string
	ModelUsed string
}

// TextGenerator abstracts an LLM text-generation service.
type TextGenerator interface {
	Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error)
	// Ready reports whether a well-formed credential is configured. It never
	// touches the network.
	Ready() error
}
