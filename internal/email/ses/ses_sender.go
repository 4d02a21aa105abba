package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"cardcomply/internal/email"
	"cardcomply/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendShareLinkEmail(ctx context.Context, toEmail, issuer, shareToken string) error {
	shareURL := email.ShareURL(s.frontendURL, shareToken)

	subject := fmt.Sprintf("Compliance review shared with you (%s)", issuer)
	htmlBody := buildShareLinkHTML(issuer, shareURL)
	textBody := fmt.Sprintf("A brand compliance review for %s creative was shared with you.\n\nView the findings:\n%s\n\nThe link expires after a limited time.", issuer, shareURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildShareLinkHTML(issuer, shareURL string) string {
	issuer = html.EscapeString(issuer)
	shareURL = html.EscapeString(shareURL)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">A compliance review was shared with you</h2>
  <p>A brand compliance review for <strong>%s</strong> creative is ready to view.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #006FCF; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Findings</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <p style="color: #999; font-size: 12px;">This link expires after a limited time.</p>
</body>
</html>`, issuer, shareURL, shareURL)
}
