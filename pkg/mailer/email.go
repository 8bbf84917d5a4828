package mailer

// Content types accepted by Email.
const (
	ContentTypeText = "text/plain"
	ContentTypeHTML = "text/html"
)

// Email is a message ready for a Sender.
type Email struct {
	Headers     map[string]string
	From        Address
	ReplyTo     Address
	Subject     string
	Body        string
	ContentType string
	Charset     string
	To          []Address
	CC          []Address
	BCC         []Address
}

// NewEmail creates a plain text UTF-8 email.
func NewEmail() *Email {
	return &Email{ContentType: ContentTypeText, Charset: "utf-8"}
}

func (e *Email) AddRecipient(a Address)       { e.To = append(e.To, a) }
func (e *Email) AddCarbonCopy(a Address)      { e.CC = append(e.CC, a) }
func (e *Email) AddBlindCarbonCopy(a Address) { e.BCC = append(e.BCC, a) }

// SetFrom sets the sender. Reply-To defaults to the sender until set
// explicitly.
func (e *Email) SetFrom(a Address) {
	e.From = a
	if e.ReplyTo.IsZero() {
		e.ReplyTo = a
	}
}

// ToString renders the recipients as a comma separated header value.
func (e *Email) ToString() string  { return joinAddresses(e.To) }
func (e *Email) CCString() string  { return joinAddresses(e.CC) }
func (e *Email) BCCString() string { return joinAddresses(e.BCC) }

// UsesCC reports whether the email has CC recipients.
func (e *Email) UsesCC() bool  { return len(e.CC) > 0 }
func (e *Email) UsesBCC() bool { return len(e.BCC) > 0 }

// IsHTML reports whether Body is HTML.
func (e *Email) IsHTML() bool { return e.ContentType == ContentTypeHTML }

// Validate checks the fields every sender needs.
func (e *Email) Validate() error {
	switch {
	case len(e.To) == 0:
		return ErrNoRecipient
	case e.From.IsZero():
		return ErrNoSender
	case e.Subject == "":
		return ErrNoSubject
	}
	return nil
}
