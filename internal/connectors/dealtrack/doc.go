// Package dealtrack implements the transaction registry on the
// DealTrack JSON HTTP API.
//
// The client classifies responses but never retries: a definitive 404
// surfaces as domain.ErrNotFound and a rejected submission as
// domain.ErrInvalidInput, both terminal, while 429, 5xx and transport
// failures surface as plain errors for the core services to retry with
// their own backoff. A Retry-After header on a 429 feeds the shared
// rate limiter so the next call waits it out.
package dealtrack
