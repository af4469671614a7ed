package amqp

import (
	"strings"
	"sync/atomic"
	"time"
)

// Circuit breaker states.
const (
	StateClosed int32 = iota
	StateOpen
	StateHalfOpen
)

const (
	// maxFailures is the number of consecutive failures before the
	// circuit opens and publishes fail fast.
	maxFailures = 3

	// openTimeout is how long the circuit stays open before allowing a
	// probe publish through in half-open state.
	openTimeout = 30 * time.Second
)

// exponentialBackoff returns the wait before reconnect attempt n, doubling
// from one second and capped at 30 seconds.
func exponentialBackoff(attempt int) time.Duration {
	backoff := time.Second << uint(attempt)
	if backoff > 30*time.Second || backoff <= 0 {
		return 30 * time.Second
	}
	return backoff
}

// connectionErrorMarkers are substrings that identify transport-level
// failures worth a reconnect, as opposed to protocol or validation errors.
var connectionErrorMarkers = []string{
	"connection refused",
	"connection closed",
	"unexpected EOF",
	"broken pipe",
	"use of closed network connection",
}

// isConnectionError reports whether err looks like a broken connection.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range connectionErrorMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// recordSuccess closes the circuit and clears the failure count.
func (c *Client) recordSuccess() {
	atomic.StoreInt64(&c.failureCount, 0)
	atomic.StoreInt32(&c.state, StateClosed)
}

// recordFailure counts a failure and opens the circuit at the threshold.
func (c *Client) recordFailure() {
	c.lastFailure = time.Now()
	if atomic.AddInt64(&c.failureCount, 1) >= maxFailures {
		atomic.StoreInt32(&c.state, StateOpen)
	}
}

// isCircuitOpen reports whether publishes should fail fast. An open circuit
// transitions to half-open once openTimeout has passed, letting one probe
// through.
func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.state) != StateOpen {
		return false
	}
	if time.Since(c.lastFailure) > openTimeout {
		atomic.StoreInt32(&c.state, StateHalfOpen)
		return false
	}
	return true
}
