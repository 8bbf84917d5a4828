package logger

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// recorderSet is the mutable list of recorders shared by a Logger and every
// handler derived from it.
type recorderSet struct {
	mu        sync.RWMutex
	recorders []Recorder
}

func (s *recorderSet) snapshot() []Recorder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recorders)
}

func (s *recorderSet) add(r Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.recorders, r) {
		return
	}
	s.recorders = append(s.recorders, r)
}

func (s *recorderSet) remove(r Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorders = slices.DeleteFunc(s.recorders, func(x Recorder) bool { return x == r })
}

// fanoutHandler forwards each record to every recorder that accepts it.
// Attributes and groups added through WithAttrs/WithGroup are replayed on
// each recorder at handle time, so recorders added later see them too.
type fanoutHandler struct {
	set        *recorderSet
	extractors []ContextExtractor
	ops        []func(slog.Handler) slog.Handler
}

func newFanoutHandler(set *recorderSet, extractors ...ContextExtractor) *fanoutHandler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &fanoutHandler{set: set, extractors: clean}
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, r := range h.set.snapshot() {
		if r.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}

	var errs []error
	for _, r := range h.set.snapshot() {
		if !r.Enabled(ctx, rec.Level) {
			continue
		}
		var target slog.Handler = r
		for _, op := range h.ops {
			target = op(target)
		}
		if err := target.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.derive(func(next slog.Handler) slog.Handler { return next.WithAttrs(attrs) })
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.derive(func(next slog.Handler) slog.Handler { return next.WithGroup(name) })
}

func (h *fanoutHandler) derive(op func(slog.Handler) slog.Handler) *fanoutHandler {
	ops := make([]func(slog.Handler) slog.Handler, len(h.ops), len(h.ops)+1)
	copy(ops, h.ops)
	return &fanoutHandler{
		set:        h.set,
		extractors: h.extractors,
		ops:        append(ops, op),
	}
}
