package noop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"cardcomply/internal/email/noop"
)

func TestNoopSender_LogsShareLink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sender := noop.NewNoopSender("http://localhost:3000", zap.New(core))

	err := sender.SendShareLinkEmail(context.Background(), "reviewer@example.com", "amex", "tok123")

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "reviewer@example.com", fields["to"])
	assert.Equal(t, "http://localhost:3000/shared/tok123", fields["url"])
}
