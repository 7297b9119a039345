// Package logger builds *slog.Logger instances with functional options and keeps
// attribute names consistent across the tool.
//
// New creates a logger writing text or JSON. WithEnvironment picks sensible defaults
// (text at debug level for development, JSON at info level otherwise), and
// WithContextExtractors injects request-scoped values such as request ids into every
// record through LogHandlerDecorator.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "mailpreview"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "catalog loaded", logger.Count(len(entries)), logger.Duration(time.Since(start)))
//
// Attribute helpers (Error, Template, SessionID, Status, ...) live in attr.go.
// Discard returns a logger for components constructed without one.
package logger
