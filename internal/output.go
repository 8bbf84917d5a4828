package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// Output is where views write. Status and headers may be changed until the
// first body write; Finish sends them when the view wrote no body.
type Output struct {
	http.ResponseWriter
	beforeWrite []func()
	status      Status
	size        int64
	mu          sync.Mutex
	written     bool
}

// NewOutput wraps w. The pending status is 200.
func NewOutput(w http.ResponseWriter) *Output {
	return &Output{
		ResponseWriter: w,
		status:         StatusOK,
	}
}

// OnBeforeWrite registers a hook to run before the header is sent.
// Hooks run in registration order, once.
func (o *Output) OnBeforeWrite(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.beforeWrite = append(o.beforeWrite, fn)
}

// SetStatus sets the status sent with the header. It has no effect once
// the header is out.
func (o *Output) SetStatus(s Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.written {
		o.status = s
	}
}

// SetHeader replaces a response header.
func (o *Output) SetHeader(key, value string) {
	o.Header().Set(key, value)
}

// WriteHeader sends the header with code. Later calls are ignored.
func (o *Output) WriteHeader(code int) {
	o.mu.Lock()
	if o.written {
		o.mu.Unlock()
		return
	}
	o.written = true
	o.status = Status(code)
	hooks := o.beforeWrite
	o.beforeWrite = nil
	o.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	o.ResponseWriter.WriteHeader(code)
}

// Write sends the header with the pending status first if needed.
func (o *Output) Write(b []byte) (int, error) {
	o.commit()
	n, err := o.ResponseWriter.Write(b)
	o.mu.Lock()
	o.size += int64(n)
	o.mu.Unlock()
	return n, err
}

// Finish sends the header if nothing has been written yet.
func (o *Output) Finish() {
	o.commit()
}

func (o *Output) commit() {
	o.mu.Lock()
	written, status := o.written, o.status
	o.mu.Unlock()
	if !written {
		o.WriteHeader(status.Code())
	}
}

// Status returns the sent status, or the pending one.
func (o *Output) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Size returns the number of body bytes written.
func (o *Output) Size() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.size
}

// Written reports whether the header has been sent.
func (o *Output) Written() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.written
}

// Flush implements the http.Flusher interface.
func (o *Output) Flush() {
	o.commit()
	if flusher, ok := o.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements the http.Hijacker interface.
func (o *Output) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := o.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap returns the underlying ResponseWriter.
func (o *Output) Unwrap() http.ResponseWriter {
	return o.ResponseWriter
}
