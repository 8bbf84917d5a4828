package internal

import "slices"

// Response carries the values a command produced for its view. It is
// passed by pointer through the command and the view.
type Response struct {
	request     *Request
	values      map[string]any
	commandName string
	keys        []string
	notFound    bool
}

// NewResponse creates an empty response to req.
func NewResponse(req *Request) *Response {
	return &Response{
		request: req,
		values:  make(map[string]any),
	}
}

// Request returns the request being answered.
func (r *Response) Request() *Request { return r.request }

// Set stores val under key. A new key is appended to Keys.
func (r *Response) Set(key string, val any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = val
}

// Get returns the value stored under key, or nil.
func (r *Response) Get(key string) any {
	return r.values[key]
}

func (r *Response) Exists(key string) bool {
	_, ok := r.values[key]
	return ok
}

func (r *Response) Remove(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	r.keys = slices.DeleteFunc(r.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in the order they were first set.
func (r *Response) Keys() []string {
	return slices.Clone(r.keys)
}

// All returns a copy of every value.
func (r *Response) All() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// NotFound reports whether the response is the fallback answer to a page
// that does not exist.
func (r *Response) NotFound() bool { return r.notFound }

func (r *Response) SetNotFound(v bool) { r.notFound = v }

// CommandName returns the name of the command that produced the response.
func (r *Response) CommandName() string { return r.commandName }

func (r *Response) SetCommandName(name string) { r.commandName = name }

// ResponseValue returns the value under key as T.
func ResponseValue[T any](r *Response, key string) (T, bool) {
	v, ok := r.values[key].(T)
	return v, ok
}
