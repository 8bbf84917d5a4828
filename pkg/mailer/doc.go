// Package mailer builds and sends emails.
//
// An [Email] carries [Address] values for every party; Reply-To follows the
// sender unless set. A [Sender] delivers it: [LogSender] only logs, the
// resend subpackage uses the Resend API.
//
// [TemplatedEmailer] fills the body from a template first:
//
//	emailer := mailer.NewTemplatedEmailer(templates, sender, "email/")
//
//	e := mailer.NewEmail()
//	e.SetFrom(mailer.Address{Name: "Esprit", Email: "noreply@example.com"})
//	e.AddRecipient(mailer.NewAddress("ana@example.com"))
//	e.Subject = "Welcome"
//	err := emailer.Send(ctx, e, "welcome", map[string]any{"Name": "Ana"})
//
// The emailer clears and sets variables on its Templates, so one emailer
// must not be shared across goroutines unless the Templates value is safe
// for that.
package mailer
