package mailer

import (
	"context"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

// Sender delivers emails.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, email *Email) error

func (f SenderFunc) Send(ctx context.Context, email *Email) error { return f(ctx, email) }

// LogSender writes emails to a logger instead of delivering them. It is the
// default sender for development setups without an API key.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(l *logger.Logger) *LogSender {
	if l == nil {
		l = logger.NewNope()
	}
	return &LogSender{log: l.WithOrigin("MAILER")}
}

func (s *LogSender) Send(ctx context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "email not delivered",
		"to", email.ToString(),
		"from", email.From.Formatted(),
		"subject", email.Subject,
		"content_type", email.ContentType,
	)
	return nil
}
