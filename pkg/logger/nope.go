package logger

import (
	"io"
)

// NewNope creates a logger that discards all output.
// Use this as a default when logging is not configured, and in tests.
func NewNope() *Logger {
	return New(WithRecorder(NewStreamRecorder(io.Discard, LevelSevere+1)))
}
