// Package clients provides the instrumented HTTP transport for downstream APIs.
package clients

import "errors"

// Transport failures. The ACL translates these to domain errors.
var (
	// ErrCircuitOpen is returned without sending when the circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last transport error once attempts run out.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
