package internal

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrIndexOutOfBounds is wrapped by IndexError.
	ErrIndexOutOfBounds = errors.New("esprit: index out of bounds")

	// ErrMalformedURL is returned by ParseURL for relative or hostless input.
	ErrMalformedURL = errors.New("esprit: malformed url")

	// ErrPageNotFound is returned by a command that cannot serve the
	// requested page. The controller retries once with the fallback command.
	ErrPageNotFound = errors.New("esprit: page not found")

	// ErrUnserviceableRequest means no command could serve the request,
	// including the fallback.
	ErrUnserviceableRequest = errors.New("esprit: unserviceable request")

	// ErrResourceLoading is returned when a mapping file or similar resource
	// cannot be read or parsed.
	ErrResourceLoading = errors.New("esprit: resource loading failed")

	// ErrTemplateConfiguration is returned when templates cannot be set up.
	ErrTemplateConfiguration = errors.New("esprit: template configuration")

	// ErrTemplateNotFound is returned when rendering an unknown template.
	ErrTemplateNotFound = errors.New("esprit: template not found")

	// ErrNotDefined is returned when instantiating a name no source defines.
	ErrNotDefined = errors.New("esprit: name not defined")
)

// BadUserInputError reports an invalid request parameter.
type BadUserInputError struct {
	Err   error
	Field string
}

func (e *BadUserInputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("bad user input: %s", e.Field)
	}
	return fmt.Sprintf("bad user input: %s: %v", e.Field, e.Err)
}

func (e *BadUserInputError) Unwrap() error {
	return e.Err
}

// RedirectError stops command execution and redirects the client.
type RedirectError struct {
	Location  string
	Permanent bool
}

// Redirect returns a temporary redirect to location.
func Redirect(location string) *RedirectError {
	return &RedirectError{Location: location}
}

// PermanentRedirect returns a permanent redirect to location.
func PermanentRedirect(location string) *RedirectError {
	return &RedirectError{Location: location, Permanent: true}
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s", e.Location)
}

// Status returns 301 for permanent redirects and 307 otherwise.
func (e *RedirectError) Status() Status {
	if e.Permanent {
		return StatusMovedPermanently
	}
	return StatusTemporaryRedirect
}

// HTTPError is the generic error page shown to clients. Err is kept for
// logging and never rendered.
type HTTPError struct {
	Err       error
	Message   string
	Title     string
	RequestID string
	Code      int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithTitle(title string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Title = title
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// ErrInternal is the page for any unrecovered failure.
func ErrInternal(opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError,
		"Something went wrong while handling your request.",
		append([]HTTPErrorOption{WithTitle("Internal Server Error")}, opts...)...)
}

// AsHTTPError extracts the HTTPError from an error chain.
// Returns nil if there is none.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}
