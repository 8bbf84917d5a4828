package logger

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Entry is a record captured by a MemoryRecorder.
type Entry struct {
	Attrs   map[string]string
	Message string
	Level   slog.Level
}

// MemoryRecorder keeps records in memory. It is meant for tests and for
// debug tooling that inspects recent log output.
type MemoryRecorder struct {
	entries *[]Entry
	mu      *sync.Mutex
	attrs   []slog.Attr
	level   slog.Level
}

// NewMemoryRecorder creates a recorder that keeps records at or above level.
func NewMemoryRecorder(level slog.Level) *MemoryRecorder {
	return &MemoryRecorder{
		entries: &[]Entry{},
		mu:      &sync.Mutex{},
		level:   level,
	}
}

func (r *MemoryRecorder) Enabled(_ context.Context, l slog.Level) bool {
	return l >= r.level
}

func (r *MemoryRecorder) Handle(_ context.Context, rec slog.Record) error {
	e := Entry{Level: rec.Level, Message: rec.Message, Attrs: make(map[string]string)}
	for _, a := range r.attrs {
		e.Attrs[a.Key] = a.Value.String()
	}
	rec.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value.String()
		return true
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, e)
	return nil
}

func (r *MemoryRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &MemoryRecorder{
		entries: r.entries,
		mu:      r.mu,
		attrs:   append(slices.Clone(r.attrs), attrs...),
		level:   r.level,
	}
}

// WithGroup is accepted but groups are flattened.
func (r *MemoryRecorder) WithGroup(string) slog.Handler {
	return r
}

func (r *MemoryRecorder) Flush() error { return nil }

func (r *MemoryRecorder) Close() error { return nil }

// Entries returns a copy of the captured records.
func (r *MemoryRecorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(*r.entries)
}

// Contains reports whether a record at level has a message containing sub.
func (r *MemoryRecorder) Contains(level slog.Level, sub string) bool {
	for _, e := range r.Entries() {
		if e.Level == level && strings.Contains(e.Message, sub) {
			return true
		}
	}
	return false
}

var _ Recorder = (*MemoryRecorder)(nil)
