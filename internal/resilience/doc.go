// Package resilience provides fault tolerance for calls leaving the process.
//
// The article service talks to one flaky dependency besides its store: the
// image asset host. Uploads go through a circuit breaker so that an outage
// at the host fails fast instead of tying up request goroutines. Uploads are
// never retried; a failed upload fails the write that carried it.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.AssetHostConfig(5, 0.6, time.Minute))
//	url, err := circuitbreaker.Do(cb, func() (string, error) {
//	    return uploader.Upload(ctx, up)
//	})
package resilience
