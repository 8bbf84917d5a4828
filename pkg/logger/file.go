package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// DefaultFileBufferSize is the buffered byte count at which a FileRecorder
// flushes on its own.
const DefaultFileBufferSize = 64 << 10

// FileRecorder buffers text records in memory and appends them to a file
// on Flush, on Close, or when the buffer grows past its limit.
type FileRecorder struct {
	cutoff
	buf      *lockedBuffer
	file     *os.File
	limit    int
	mu       sync.Mutex
	filename string
	closed   bool
}

// FileOption configures a FileRecorder.
type FileOption func(*FileRecorder)

// WithBufferSize sets the auto-flush threshold in bytes.
// Zero disables automatic flushing.
func WithBufferSize(n int) FileOption {
	return func(r *FileRecorder) {
		r.limit = n
	}
}

// NewFileRecorder opens (or creates) filename for appending and returns a
// recorder accepting records at or above level.
func NewFileRecorder(filename string, level slog.Level, opts ...FileOption) (*FileRecorder, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: open %s: %w", filename, err)
	}

	buf := &lockedBuffer{}
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level:       slog.LevelDebug - 100,
		ReplaceAttr: replaceLevel,
	})

	r := &FileRecorder{
		buf:      buf,
		file:     f,
		limit:    DefaultFileBufferSize,
		filename: filename,
	}
	r.cutoff = cutoff{next: h, level: level}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Handle buffers the record and flushes once the buffer limit is reached.
func (r *FileRecorder) Handle(ctx context.Context, rec slog.Record) error {
	if err := r.cutoff.Handle(ctx, rec); err != nil {
		return err
	}
	if r.limit > 0 && r.buf.size() >= r.limit {
		return r.Flush()
	}
	return nil
}

// WithAttrs returns a handler that writes into the same buffer.
func (r *FileRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &fileChild{parent: r, cutoff: cutoff{next: r.next.WithAttrs(attrs), level: r.level}}
}

// WithGroup returns a handler that writes into the same buffer.
func (r *FileRecorder) WithGroup(name string) slog.Handler {
	return &fileChild{parent: r, cutoff: cutoff{next: r.next.WithGroup(name), level: r.level}}
}

// Flush appends all buffered records to the file.
func (r *FileRecorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := r.buf.take()
	if len(data) == 0 || r.file == nil {
		return nil
	}
	if _, err := r.file.Write(data); err != nil {
		return fmt.Errorf("logger: write %s: %w", r.filename, err)
	}
	return nil
}

// Close flushes the buffer and closes the file.
func (r *FileRecorder) Close() error {
	flushErr := r.Flush()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return flushErr
	}
	r.closed = true
	closeErr := r.file.Close()
	r.file = nil
	return errors.Join(flushErr, closeErr)
}

// fileChild is a FileRecorder view carrying extra attributes or groups.
type fileChild struct {
	cutoff
	parent *FileRecorder
}

func (c *fileChild) Handle(ctx context.Context, rec slog.Record) error {
	if err := c.cutoff.Handle(ctx, rec); err != nil {
		return err
	}
	if c.parent.limit > 0 && c.parent.buf.size() >= c.parent.limit {
		return c.parent.Flush()
	}
	return nil
}

func (c *fileChild) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &fileChild{parent: c.parent, cutoff: cutoff{next: c.next.WithAttrs(attrs), level: c.level}}
}

func (c *fileChild) WithGroup(name string) slog.Handler {
	return &fileChild{parent: c.parent, cutoff: cutoff{next: c.next.WithGroup(name), level: c.level}}
}

var _ Recorder = (*FileRecorder)(nil)
