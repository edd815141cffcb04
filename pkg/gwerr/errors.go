// Package gwerr defines the error kinds returned by the gateway clients.
package gwerr

import (
	"fmt"
	"strings"

	"github.com/sirosfoundation/go-paygw/pkg/transport"
)

// ConfigurationError is returned at client construction when the supplied
// configuration is unusable. It is never retried.
type ConfigurationError struct {
	// Missing lists every absent required key, in declaration order.
	Missing []string
	// Reason describes a non-missing-key problem such as an invalid value.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("configuration error: missing required keys: %s", strings.Join(e.Missing, ", "))
	}
	return "configuration error: " + e.Reason
}

// ArgumentError is returned when per-call data supplied by the caller is
// invalid. No network call is made.
type ArgumentError struct {
	Missing []string
	Reason  string
}

func (e *ArgumentError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("argument error: missing required fields: %s", strings.Join(e.Missing, ", "))
	}
	return "argument error: " + e.Reason
}

// Argumentf builds an ArgumentError with a formatted reason.
func Argumentf(format string, args ...any) *ArgumentError {
	return &ArgumentError{Reason: fmt.Sprintf(format, args...)}
}

// RequestError is returned when the remote call ultimately fails with a
// status of 400 or above, including synthesized gateway timeouts.
type RequestError struct {
	Request  *transport.Request
	Response *transport.Response
}

func (e *RequestError) Error() string {
	method, url := "", ""
	if e.Request != nil {
		method, url = e.Request.Method, e.Request.URL
	}
	if e.Response == nil {
		return fmt.Sprintf("request error: %s %s: no response", method, url)
	}
	return fmt.Sprintf("request error: %s %s returned %d %s: %s",
		method, url, e.Response.StatusCode, e.Response.Reason, truncate(string(e.Response.Body), 512))
}

// StatusCode returns the response status, or 0 when there is no response.
func (e *RequestError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
