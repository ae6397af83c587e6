// Package observability groups the logging, metrics and tracing support
// used by the article service.
//
// Subpackages:
//   - logging: slog loggers carrying request and trace ids
//   - metrics: Prometheus collectors for HTTP traffic, article operations and uploads
//   - tracing: OpenTelemetry tracer provider and HTTP middleware
package observability
