package noop

import (
	"context"

	"go.uber.org/zap"

	"cardcomply/internal/email"
	"cardcomply/internal/port"
)

type noopSender struct {
	frontendURL string
	logger      *zap.Logger
}

// NewNoopSender creates a no-op EmailSender that logs share links instead of sending them.
func NewNoopSender(frontendURL string, logger *zap.Logger) port.EmailSender {
	return &noopSender{frontendURL: frontendURL, logger: logger}
}

func (s *noopSender) SendShareLinkEmail(_ context.Context, toEmail, issuer, shareToken string) error {
	s.logger.Info("noop email: share link",
		zap.String("to", toEmail),
		zap.String("issuer", issuer),
		zap.String("url", email.ShareURL(s.frontendURL, shareToken)))
	return nil
}
