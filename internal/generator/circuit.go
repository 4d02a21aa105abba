package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"cardcomply/internal/port"
)

// circuitState tracks rate-limit backoff for a single generator.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// CircuitGenerator wraps a TextGenerator and fails fast while the provider's
// Retry-After window is open. It never retries a call.
// It implements port.TextGenerator.
type CircuitGenerator struct {
	inner   port.TextGenerator
	name    string
	circuit *circuitState
	logger  *zap.Logger
	now     func() time.Time
}

// NewCircuitGenerator wraps inner under the given provider name.
func NewCircuitGenerator(inner port.TextGenerator, name string, logger *zap.Logger) *CircuitGenerator {
	return newCircuitGenerator(inner, name, logger, time.Now)
}

// NewCircuitGeneratorWithClock is NewCircuitGenerator with an injectable clock (for testing).
func NewCircuitGeneratorWithClock(inner port.TextGenerator, name string, logger *zap.Logger, now func() time.Time) *CircuitGenerator {
	return newCircuitGenerator(inner, name, logger, now)
}

func newCircuitGenerator(inner port.TextGenerator, name string, logger *zap.Logger, now func() time.Time) *CircuitGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CircuitGenerator{
		inner:   inner,
		name:    name,
		circuit: &circuitState{},
		logger:  logger,
		now:     now,
	}
}

func (g *CircuitGenerator) Ready() error {
	return g.inner.Ready()
}

func (g *CircuitGenerator) Generate(ctx context.Context, input port.GenerateInput) (*port.GenerateOutput, error) {
	now := g.now()
	if resetAt, open := g.circuit.isOpenWithReset(now); open {
		g.logger.Warn("generator circuit open, failing fast",
			zap.String("provider", g.name),
			zap.Time("reset_at", resetAt))
		retryAfter := resetAt.Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError(g.name, fmt.Errorf("circuit open"), int(retryAfter.Seconds()))
	}

	out, err := g.inner.Generate(ctx, input)
	if err == nil {
		return out, nil
	}

	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		resetAt := now.Add(rlErr.RetryAfter)
		g.circuit.open(resetAt)
		g.logger.Warn("generator rate limited, opening circuit",
			zap.String("provider", g.name),
			zap.Duration("retry_after", rlErr.RetryAfter))
	}
	return nil, err
}
