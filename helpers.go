package esprit

import "github.com/dmitrymomot/esprit/internal"

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return internal.NewRegistry[T]()
}

// ResponseValue returns the response value under key when it has type T.
func ResponseValue[T any](r *Response, key string) (T, bool) {
	return internal.ResponseValue[T](r, key)
}

// SessionValue returns the session value under key when it has type T.
func SessionValue[T any](req *Request, key string) T {
	return internal.SessionValue[T](req, key)
}

// Query parses the GET parameter name, or returns the zero value.
func Query[T Scalar](req *Request, name string) T {
	return internal.Query[T](req, name)
}

// QueryDefault parses the GET parameter name, or returns def.
func QueryDefault[T Scalar](req *Request, name string, def T) T {
	return internal.QueryDefault(req, name, def)
}

// Form parses the POST parameter name, or returns the zero value.
func Form[T Scalar](req *Request, name string) T {
	return internal.Form[T](req, name)
}

// Segment parses the i-th path segment.
func Segment[T Scalar](req *Request, i int) (T, error) {
	return internal.Segment[T](req, i)
}
