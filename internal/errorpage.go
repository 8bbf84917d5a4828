package internal

import (
	"html/template"
)

// ErrorHandler writes the page for a request that failed. It is only
// called while nothing has been written to out.
type ErrorHandler func(out *Output, e *HTTPError)

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
{{- if .RequestID}}
<p><small>Request ID: {{.RequestID}}</small></p>
{{- end}}
</body>
</html>
`))

// writeErrorPage is the default ErrorHandler. Only the title, the message
// and the request id reach the client.
func writeErrorPage(out *Output, e *HTTPError) {
	if out.Written() {
		return
	}
	title := e.Title
	if title == "" {
		title = e.StatusText()
	}
	out.SetStatus(Status(e.Code))
	out.SetHeader("Content-Type", "text/html; charset=utf-8")
	out.SetHeader("Cache-Control", "no-store")
	_ = errorPage.Execute(out, struct {
		Title     string
		Message   string
		RequestID string
	}{title, e.Message, e.RequestID})
}
