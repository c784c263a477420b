// Package logging builds the application logger and enriches it from
// request context.
//
// NewLogger emits log/slog JSON for production; NewTextLogger is the
// same logger with text output for local runs. Both honor LOG_LEVEL
// (debug, info, warn, error). WithRequestID and WithTraceID pull the
// identifiers the middleware stored in the context, so a page render,
// its backend calls and its trace can be joined on one id pair.
//
// Example usage:
//
//	import "fresh-motors-web/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started", slog.String("version", "1.0"))
//	}
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("processing request")
//	}
package logging
