package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Event is a single loggable occurrence with its origin and optional data.
type Event struct {
	Time     time.Time
	Data     any
	Err      error
	Origin   string
	Message  string
	Severity slog.Level
}

// NewEvent creates an event stamped with the current time.
func NewEvent(severity slog.Level, origin, message string, data any) Event {
	return Event{
		Time:     time.Now(),
		Severity: severity,
		Origin:   origin,
		Message:  message,
		Data:     data,
	}
}

// EventFromError builds an ERROR event carrying err.
func EventFromError(err error, origin string) Event {
	e := NewEvent(LevelError, origin, "", nil)
	if err != nil {
		e.Message = err.Error()
		e.Err = err
	}
	return e
}

// String renders "SEVERITY [origin]: message".
func (e Event) String() string {
	return fmt.Sprintf("%s [%s]: %s", LevelName(e.Severity), e.Origin, e.Message)
}

// LogEvent writes e through the logger.
func (l *Logger) LogEvent(ctx context.Context, e Event) {
	attrs := make([]slog.Attr, 0, 3)
	if e.Origin != "" {
		attrs = append(attrs, slog.String(OriginKey, e.Origin))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", fmt.Sprintf("%+v", e.Err)))
	}
	if e.Data != nil {
		attrs = append(attrs, slog.Any("data", e.Data))
	}
	l.LogAttrs(ctx, e.Severity, e.Message, attrs...)
}
