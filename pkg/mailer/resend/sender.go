package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/esprit/pkg/mailer"
)

// Config holds Resend credentials and the default sender. It maps to the
// resend_api_key and mail_from config keys.
type Config struct {
	APIKey string
	From   mailer.Address
}

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	from   mailer.Address
}

// New creates a Resend sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
	}
}

// Send implements mailer.Sender. Emails without a from address use the
// configured default.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if email.From.IsZero() {
		email.SetFrom(s.from)
	}
	if err := email.Validate(); err != nil {
		return err
	}

	_, err := s.client.Emails.SendWithContext(ctx, Request(email))
	if err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

// Request converts email to the Resend API payload.
func Request(email *mailer.Email) *resend.SendEmailRequest {
	req := &resend.SendEmailRequest{
		From:    email.From.Formatted(),
		To:      mailer.FormatAll(email.To),
		Cc:      mailer.FormatAll(email.CC),
		Bcc:     mailer.FormatAll(email.BCC),
		Subject: email.Subject,
		Headers: email.Headers,
	}
	if !email.ReplyTo.IsZero() {
		req.ReplyTo = email.ReplyTo.Formatted()
	}
	if email.IsHTML() {
		req.Html = email.Body
	} else {
		req.Text = email.Body
	}
	return req
}
