package generator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cardcomply/internal/generator"
	"cardcomply/internal/port"
	"cardcomply/mocks"
)

func TestCircuitGenerator_OpensOnRateLimitAndFailsFast(t *testing.T) {
	inner := new(mocks.MockTextGenerator)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	g := generator.NewCircuitGeneratorWithClock(inner, "claude", nil, clock)

	inner.On("Generate", mock.Anything, mock.Anything).
		Return(nil, generator.NewRateLimitError("claude", errors.New("429"), 30)).Once()

	_, err := g.Generate(context.Background(), port.GenerateInput{Prompt: "a"})
	var rlErr *generator.RateLimitError
	require.True(t, errors.As(err, &rlErr))

	// Inside the window the inner generator is not called.
	now = now.Add(10 * time.Second)
	_, err = g.Generate(context.Background(), port.GenerateInput{Prompt: "b"})
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 20*time.Second, rlErr.RetryAfter)
	inner.AssertNumberOfCalls(t, "Generate", 1)

	// After the window the call goes through again.
	now = now.Add(25 * time.Second)
	inner.On("Generate", mock.Anything, mock.Anything).
		Return(&port.GenerateOutput{Text: "ok"}, nil).Once()
	out, err := g.Generate(context.Background(), port.GenerateInput{Prompt: "c"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Text)
	inner.AssertNumberOfCalls(t, "Generate", 2)
}

func TestCircuitGenerator_OtherErrorsDoNotOpen(t *testing.T) {
	inner := new(mocks.MockTextGenerator)
	g := generator.NewCircuitGenerator(inner, "openai", nil)

	inner.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Twice()

	_, err := g.Generate(context.Background(), port.GenerateInput{})
	assert.EqualError(t, err, "boom")
	_, err = g.Generate(context.Background(), port.GenerateInput{})
	assert.EqualError(t, err, "boom")
	inner.AssertNumberOfCalls(t, "Generate", 2)
}

func TestCircuitGenerator_ReadyDelegates(t *testing.T) {
	inner := new(mocks.MockTextGenerator)
	inner.On("Ready").Return(errors.New("no key"))

	g := generator.NewCircuitGenerator(inner, "gemini", nil)
	assert.EqualError(t, g.Ready(), "no key")
}
