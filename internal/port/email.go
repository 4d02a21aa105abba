package port

import "context"

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendShareLinkEmail(ctx context.Context, toEmail, issuer, shareToken string) error
}
