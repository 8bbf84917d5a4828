package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string
	Environment string
	// MinLevel is the lowest severity forwarded to Sentry. Records at ERROR
	// or above always create issues.
	MinLevel slog.Level
	// FlushTimeout bounds Flush and Close. Default: 2 seconds.
	FlushTimeout time.Duration
}

// ErrSentryDisabled is returned by NewSentryRecorder when no DSN is set.
var ErrSentryDisabled = errors.New("logger: sentry dsn is empty")

// SentryRecorder forwards records to Sentry.
type SentryRecorder struct {
	cutoff
	timeout time.Duration
}

// NewSentryRecorder initializes the Sentry SDK and returns a recorder.
// It returns ErrSentryDisabled when cfg.DSN is empty so callers can skip it
// in local environments.
func NewSentryRecorder(cfg SentryConfig) (*SentryRecorder, error) {
	if cfg.DSN == "" {
		return nil, ErrSentryDisabled
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		return nil, fmt.Errorf("logger: init sentry: %w", err)
	}

	minLevel := cfg.MinLevel
	if minLevel == 0 {
		minLevel = LevelWarning
	}

	logLevels := make([]slog.Level, 0, 3)
	for _, lvl := range []slog.Level{LevelWarning, LevelError, LevelSevere} {
		if lvl >= minLevel {
			logLevels = append(logLevels, lvl)
		}
	}

	h := sentryslog.Option{
		EventLevel: []slog.Level{LevelError, LevelSevere},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	timeout := cfg.FlushTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return &SentryRecorder{
		cutoff:  cutoff{next: h, level: minLevel},
		timeout: timeout,
	}, nil
}

// Flush waits for buffered events to be delivered.
func (r *SentryRecorder) Flush() error {
	if !sentry.Flush(r.timeout) {
		return errors.New("logger: sentry flush timed out")
	}
	return nil
}

// Close flushes pending events. The SDK has no per-client close.
func (r *SentryRecorder) Close() error {
	return r.Flush()
}

var _ Recorder = (*SentryRecorder)(nil)
