package resend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/esprit/pkg/mailer"
	"github.com/dmitrymomot/esprit/pkg/mailer/resend"
)

func TestRequest(t *testing.T) {
	t.Parallel()

	e := mailer.NewEmail()
	e.SetFrom(mailer.Address{Name: "Esprit", Email: "noreply@example.com"})
	e.AddRecipient(mailer.NewAddress("ana@example.com"))
	e.AddCarbonCopy(mailer.NewAddress("cc@example.com"))
	e.Subject = "Hi"
	e.Body = "plain body"

	req := resend.Request(e)
	assert.Equal(t, "Esprit <noreply@example.com>", req.From)
	assert.Equal(t, "Esprit <noreply@example.com>", req.ReplyTo)
	assert.Equal(t, []string{"ana@example.com"}, req.To)
	assert.Equal(t, []string{"cc@example.com"}, req.Cc)
	assert.Nil(t, req.Bcc)
	assert.Equal(t, "plain body", req.Text)
	assert.Empty(t, req.Html)

	e.ContentType = mailer.ContentTypeHTML
	e.Body = "<p>html</p>"
	req = resend.Request(e)
	assert.Equal(t, "<p>html</p>", req.Html)
	assert.Empty(t, req.Text)
}
