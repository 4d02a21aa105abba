package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendShareLinkEmail(ctx context.Context, toEmail, issuer, shareToken string) error {
	args := m.Called(ctx, toEmail, issuer, shareToken)
	return args.Error(0)
}
