package mailer

import (
	"context"
	"errors"
	"fmt"
)

// Templates evaluates named templates with variables.
type Templates interface {
	TemplateExists(name string) bool
	Clear()
	SetVariable(key string, value any)
	Evaluate(name string) (string, error)
}

// TemplatedEmailer fills an email body from a template before sending.
type TemplatedEmailer struct {
	templates Templates
	sender    Sender
	prefix    string
}

// NewTemplatedEmailer creates an emailer. Template names get prefix
// prepended, e.g. "email/" + "welcome".
func NewTemplatedEmailer(templates Templates, sender Sender, prefix string) *TemplatedEmailer {
	return &TemplatedEmailer{templates: templates, sender: sender, prefix: prefix}
}

// SetSender replaces the sender.
func (m *TemplatedEmailer) SetSender(s Sender) { m.sender = s }

// Send renders template with params into email.Body and sends it.
// The template's variables are cleared first.
func (m *TemplatedEmailer) Send(ctx context.Context, email *Email, template string, params map[string]any) error {
	name := m.prefix + template
	if !m.templates.TemplateExists(name) {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	m.templates.Clear()
	for k, v := range params {
		m.templates.SetVariable(k, v)
	}

	body, err := m.templates.Evaluate(name)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}
	email.Body = body

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
