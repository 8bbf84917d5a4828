package logger

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

// OriginKey is the attribute naming the component that produced a record.
const OriginKey = "origin"

// Logger is a slog.Logger whose output fans out to a mutable set of
// recorders. Loggers derived with With or WithOrigin share the recorders.
type Logger struct {
	*slog.Logger
	set *recorderSet
}

// Option configures a Logger.
type Option func(*options)

type options struct {
	recorders  []Recorder
	extractors []ContextExtractor
}

// WithRecorder attaches a recorder at construction.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorders = append(o.recorders, r)
		}
	}
}

// WithExtractors adds context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// New creates a Logger. Without recorders it writes JSON to stdout at INFO.
func New(opts ...Option) *Logger {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.recorders) == 0 {
		o.recorders = []Recorder{NewStreamRecorder(os.Stdout, LevelInfo)}
	}

	set := &recorderSet{}
	for _, r := range o.recorders {
		set.add(r)
	}
	return &Logger{
		Logger: slog.New(newFanoutHandler(set, o.extractors...)),
		set:    set,
	}
}

// AddRecorder attaches r. Adding the same recorder twice is a no-op.
func (l *Logger) AddRecorder(r Recorder) {
	l.set.add(r)
}

// RemoveRecorder detaches r without closing it.
func (l *Logger) RemoveRecorder(r Recorder) {
	l.set.remove(r)
}

// Recorders returns the currently attached recorders.
func (l *Logger) Recorders() []Recorder {
	return l.set.snapshot()
}

// With returns a Logger that includes args in every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), set: l.set}
}

// WithOrigin returns a Logger tagging records with the producing component.
func (l *Logger) WithOrigin(origin string) *Logger {
	return l.With(slog.String(OriginKey, origin))
}

// Flush flushes every recorder and reports all failures.
func (l *Logger) Flush() error {
	var errs []error
	for _, r := range l.set.snapshot() {
		if err := r.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every attached recorder. A failing recorder does not stop
// the rest from being closed.
func (l *Logger) Close() error {
	var errs []error
	for _, r := range l.set.snapshot() {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *Logger) Severe(msg string, args ...any) {
	l.Log(context.Background(), LevelSevere, msg, args...)
}

func (l *Logger) SevereContext(ctx context.Context, msg string, args ...any) {
	l.Log(ctx, LevelSevere, msg, args...)
}

func (l *Logger) Warning(msg string, args ...any) {
	l.Log(context.Background(), LevelWarning, msg, args...)
}

func (l *Logger) WarningContext(ctx context.Context, msg string, args ...any) {
	l.Log(ctx, LevelWarning, msg, args...)
}

func (l *Logger) Config(msg string, args ...any) {
	l.Log(context.Background(), LevelConfig, msg, args...)
}

func (l *Logger) Fine(msg string, args ...any) {
	l.Log(context.Background(), LevelFine, msg, args...)
}

func (l *Logger) Finer(msg string, args ...any) {
	l.Log(context.Background(), LevelFiner, msg, args...)
}

func (l *Logger) Finest(msg string, args ...any) {
	l.Log(context.Background(), LevelFinest, msg, args...)
}

func (l *Logger) FinestContext(ctx context.Context, msg string, args ...any) {
	l.Log(ctx, LevelFinest, msg, args...)
}
