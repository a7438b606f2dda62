// Package logger provides structured logging with context extraction and Sentry integration.
//
// It extends log/slog with automatic context-based attribute injection and
// optional Sentry error reporting.
//
// # Basic Usage
//
//	log := logger.New(logger.Config{Level: "debug"}, logger.RequestIDExtractor())
//
//	ctx := logger.WithRequestID(r.Context(), logger.NewRequestID())
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//	// {"level":"INFO","msg":"request processed","status":200,"request_id":"..."}
//
// # Sentry Integration
//
//	log := logger.NewWithSentry(cfg, logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//	}, logger.RequestIDExtractor())
//	defer logger.Flush(context.Background())
//
// When DSN is empty the logger writes to stdout only. Error records create
// Sentry issues; Warn and Error records are stored as Sentry logs.
//
// # Custom Extractors
//
// A [ContextExtractor] pulls one attribute out of the context per record:
//
//	func UserIDExtractor(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(userKey{}).(int64); ok {
//			return slog.Int64("user_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
// [Discard] returns a logger that discards everything; use it as a default
// in tests and when logging is not configured.
package logger
