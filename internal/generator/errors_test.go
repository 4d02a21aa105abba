package generator_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cardcomply/internal/generator"
)

func TestNewRateLimitError_DefaultsRetryAfter(t *testing.T) {
	base := errors.New("429")
	err := generator.NewRateLimitError("claude", base, 0)

	assert.Equal(t, 60*time.Second, err.RetryAfter)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "claude rate limited")
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, generator.ParseRetryAfterHeader(""))
	assert.Equal(t, 30, generator.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, generator.ParseRetryAfterHeader("Wed, 21 Oct 2015 07:28:00 GMT"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", generator.Truncate("abc", 5))
	assert.Equal(t, "ab...", generator.Truncate("abcdef", 2))
}
