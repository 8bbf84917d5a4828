package logger

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// Recorder is a destination for log records. Records below the recorder's
// cutoff are never handed to it.
type Recorder interface {
	slog.Handler

	// Flush writes any buffered records to the underlying sink.
	Flush() error

	// Close flushes and releases the sink. Close is idempotent.
	Close() error
}

// cutoff filters records by minimum severity in front of another handler.
type cutoff struct {
	next  slog.Handler
	level slog.Leveler
}

func (c cutoff) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= c.level.Level() && c.next.Enabled(ctx, l)
}

func (c cutoff) Handle(ctx context.Context, rec slog.Record) error {
	return c.next.Handle(ctx, rec)
}

func (c cutoff) WithAttrs(attrs []slog.Attr) slog.Handler {
	return cutoff{next: c.next.WithAttrs(attrs), level: c.level}
}

func (c cutoff) WithGroup(name string) slog.Handler {
	return cutoff{next: c.next.WithGroup(name), level: c.level}
}

// StreamRecorder writes JSON records straight to a writer without buffering.
type StreamRecorder struct {
	cutoff
	w io.Writer
}

// NewStreamRecorder creates a recorder that writes records at or above
// level to w as JSON lines.
func NewStreamRecorder(w io.Writer, level slog.Level) *StreamRecorder {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       slog.LevelDebug - 100,
		ReplaceAttr: replaceLevel,
	})
	return &StreamRecorder{cutoff: cutoff{next: h, level: level}, w: w}
}

// Flush syncs the writer when it supports it.
func (r *StreamRecorder) Flush() error {
	if s, ok := r.w.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

// Close flushes the writer. The writer itself is owned by the caller.
func (r *StreamRecorder) Close() error {
	return r.Flush()
}

// lockedBuffer serializes writes from handlers derived with WithAttrs.
type lockedBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *lockedBuffer) take() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.buf
	b.buf = nil
	return out
}

func (b *lockedBuffer) size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buf)
}
