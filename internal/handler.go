package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler mounts routes that bypass the controller, such as webhooks or
// file downloads.
//
// Example:
//
//	type Webhooks struct{}
//
//	func (h *Webhooks) Routes(r chi.Router) {
//	    r.Post("/hooks/mail", h.mailEvent)
//	}
type Handler interface {
	Routes(r chi.Router)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(r chi.Router)

func (f HandlerFunc) Routes(r chi.Router) { f(r) }

// Middleware wraps the whole application, controller included.
type Middleware func(next http.Handler) http.Handler
