// Package logger provides a structured logging facility based on Zap.
//
// New builds a development logger for the debug level and a production logger
// otherwise, with console or JSON encoding. The embedded web server, the
// bundle store and the CLI all log through it.
//
// # Context Awareness
//
// WithRayID extracts the request ID set by core/middleware/rayid from a Fiber
// context and attaches it to the log entry, so that every line written while
// handling one request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Web server started", zap.String("url", url))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
