package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// Sender delivers transactional email.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// LogSender logs emails instead of sending them, used when no
// Resend API key is configured.
type LogSender struct{}

// Send logs the email.
func (s *LogSender) Send(_ context.Context, to, subject, html string) error {
	log.Printf("email (log only) to=%s subject=%q body=%q", to, subject, html)
	return nil
}

// ResendSender sends email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// Send delivers the email via Resend.
func (s *ResendSender) Send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a ResendSender when an API key is configured and a
// LogSender otherwise.
func NewSender(apiKey, from string) Sender {
	if apiKey == "" {
		return &LogSender{}
	}
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}
