// Package retry decides whether a failed gateway call should be resent.
package retry

import (
	"fmt"
	"strings"
	"time"
)

// Limit is the retry budget for one status code.
type Limit struct {
	// Global is the number of retries allowed for any endpoint.
	Global int `yaml:"global"`
	// Endpoints overrides Global for specific endpoints, keyed by the
	// endpoint path ("charges/ABC") or its resource ("charges").
	Endpoints map[string]int `yaml:"endpoints,omitempty"`
	// Backoff is waited before each retry.
	Backoff time.Duration `yaml:"backoff,omitempty"`
}

// Policy maps HTTP status codes to retry budgets. Statuses without an entry
// are never retried.
type Policy map[int]Limit

// Budget returns the number of retries allowed for endpoint and status.
func (p Policy) Budget(endpoint string, status int) int {
	limit, ok := p[status]
	if !ok {
		return 0
	}

	endpoint = strings.Trim(endpoint, "/")
	if n, ok := limit.Endpoints[endpoint]; ok {
		return n
	}
	resource, _, _ := strings.Cut(endpoint, "/")
	if n, ok := limit.Endpoints[resource]; ok {
		return n
	}
	return limit.Global
}

// ShouldRetry reports whether another attempt is allowed after retries
// retries have already been made for this call.
func (p Policy) ShouldRetry(endpoint string, status, retries int) bool {
	return retries < p.Budget(endpoint, status)
}

// Backoff returns the wait before retrying a status.
func (p Policy) Backoff(status int) time.Duration {
	return p[status].Backoff
}

// Validate rejects negative budgets and nonsensical status codes.
func (p Policy) Validate() error {
	for status, limit := range p {
		if status < 400 || status > 599 {
			return fmt.Errorf("retry: status %d is not a failure status", status)
		}
		if limit.Global < 0 {
			return fmt.Errorf("retry: status %d has negative global limit", status)
		}
		for endpoint, n := range limit.Endpoints {
			if n < 0 {
				return fmt.Errorf("retry: status %d endpoint %q has negative limit", status, endpoint)
			}
		}
		if limit.Backoff < 0 {
			return fmt.Errorf("retry: status %d has negative backoff", status)
		}
	}
	return nil
}
