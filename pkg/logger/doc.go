// Package logger provides severity-leveled structured logging on top of
// log/slog with pluggable recorders.
//
// # Severities
//
// Eight severities are defined as slog levels, from most to least severe:
// SEVERE, ERROR, WARNING, INFO, CONFIG, FINE, FINER and FINEST. ERROR,
// WARNING and INFO coincide with slog's own levels, so third-party handlers
// keep working.
//
// # Recorders
//
// A [Logger] fans every record out to its recorders. Each recorder applies
// its own severity cutoff:
//
//	file, err := logger.NewFileRecorder("/var/log/app.log", logger.LevelWarning)
//	if err != nil {
//		return err
//	}
//	log := logger.New(
//		logger.WithRecorder(logger.NewStreamRecorder(os.Stdout, logger.LevelInfo)),
//		logger.WithRecorder(file),
//	)
//	defer log.Close()
//
//	log.WithOrigin("BILLING").Severe("payment gateway unreachable")
//
// [FileRecorder] buffers records and appends them to disk on Flush, Close,
// or when its buffer limit is reached. [SentryRecorder] forwards WARNING and
// above to Sentry, creating issues for ERROR and SEVERE.
//
// Recorders can be attached and detached at runtime with AddRecorder and
// RemoveRecorder; loggers derived with With or WithOrigin share them.
//
// # Context extractors
//
// A [ContextExtractor] pulls request-scoped attributes (request id, user id)
// from the context on every log call:
//
//	log := logger.New(logger.WithExtractors(middlewares.RequestIDExtractor()))
//	log.InfoContext(ctx, "request processed")
//
// # Events
//
// [EventFromError] turns an error into an ERROR [Event] tagged with its
// origin, which [Logger.LogEvent] writes with the error text attached.
package logger
