// Package metrics provides Prometheus metrics registry and recording utilities.
//
// Every collector is registered once with the default registry at package
// init and exposed via the /metrics endpoint:
//   - HTTP request metrics (count, duration, size, in-flight)
//   - Article operation metrics (count by result, duration)
//   - Asset upload metrics (count by provider and result, duration, breaker state)
//
// Example usage:
//
//	start := time.Now()
//	article, err := svc.Create(ctx, in)
//	metrics.RecordArticleOperation("create", metrics.ResultOf(err), time.Since(start))
package metrics
