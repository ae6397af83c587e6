// Package tracing provides OpenTelemetry tracing integration.
//
// NewProvider installs an SDK tracer provider and the W3C trace-context
// propagator. Middleware opens a server span per HTTP request, and the
// article service opens a child span per operation via StartSpan.
//
// Example usage:
//
//	tp, err := tracing.NewProvider(cfg.Tracing, version)
//	defer func() { _ = tp.Shutdown(context.Background()) }()
//
//	ctx, span := tracing.StartSpan(ctx, "article.create")
//	defer span.End()
package tracing
