// Package middlewares provides HTTP middleware for esprit applications.
//
// # Request ID
//
// RequestID tags each request with an ID taken from an upstream header or
// a new UUID. Pass GetRequestID to the controller so error pages show it,
// and RequestIDExtractor to the logger so every record carries it:
//
//	log := logger.New(
//	    logger.WithRecorder(logger.NewStreamRecorder(os.Stdout, logger.LevelInfo)),
//	    logger.WithExtractors(middlewares.RequestIDExtractor()),
//	)
//	ctrl, err := esprit.NewController(cfg,
//	    esprit.WithLogger(log),
//	    esprit.WithRequestIDFunc(middlewares.GetRequestID),
//	)
//
// # Recover
//
// Recover catches panics of handlers registered with WithHandlers, logs
// them as SEVERE and answers 500:
//
//	app := esprit.New(
//	    esprit.WithController(ctrl),
//	    esprit.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(ctrl.Logger()),
//	    ),
//	)
package middlewares
