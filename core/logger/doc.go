// Package logger provides zap logger construction and request-scoped helpers.
//
// The logger is configured through logger.Config (level and encoding). In
// debug mode it uses the zap development config with colored console output;
// otherwise it emits structured JSON suitable for log aggregation.
//
// WithRayID attaches the per-request ray_id (set by the rayid middleware) to
// a child logger so every log line of a request can be correlated.
package logger
