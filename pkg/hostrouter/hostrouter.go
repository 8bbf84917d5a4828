package hostrouter

import "net/http"

// Routes maps host patterns to HTTP handlers.
type Routes map[string]http.Handler

// Router dispatches requests on their Host header.
type Router struct {
	table    *Table[http.Handler]
	fallback http.Handler
}

// New creates a host router from the given routes.
// The fallback handler serves requests that match no pattern.
func New(routes Routes, fallback http.Handler) *Router {
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}
	return &Router{
		table:    NewTable(map[string]http.Handler(routes)),
		fallback: fallback,
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r.table.Match(req.Host); ok {
		h.ServeHTTP(w, req)
		return
	}
	r.fallback.ServeHTTP(w, req)
}
