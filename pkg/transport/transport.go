package transport

import (
	"context"
	"net/http"
	"strings"
)

// Request is an outbound gateway call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is an inbound gateway response. Non-2xx statuses are returned as
// responses, not errors; the caller decides what a failure is.
type Response struct {
	StatusCode int
	Proto      string
	Reason     string
	Header     http.Header
	Body       []byte
}

// IsError reports whether the status is 400 or above.
func (r *Response) IsError() bool {
	return r.StatusCode >= http.StatusBadRequest
}

// Transport sends a single request and returns the response.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// MethodRouter dispatches requests to one of two transports by HTTP method.
// It keeps the gateway's POST/PUT stream quirk behind the Transport interface.
type MethodRouter struct {
	standard   Transport
	raw        Transport
	rawMethods map[string]bool
}

// DefaultRawMethods are the methods routed to the raw-stream transport.
var DefaultRawMethods = []string{http.MethodPost, http.MethodPut}

// NewMethodRouter creates a router sending rawMethods through raw and
// everything else through standard. A nil rawMethods uses DefaultRawMethods.
func NewMethodRouter(standard, raw Transport, rawMethods []string) *MethodRouter {
	if rawMethods == nil {
		rawMethods = DefaultRawMethods
	}
	m := make(map[string]bool, len(rawMethods))
	for _, method := range rawMethods {
		m[strings.ToUpper(method)] = true
	}
	return &MethodRouter{standard: standard, raw: raw, rawMethods: m}
}

// Do implements Transport
func (r *MethodRouter) Do(ctx context.Context, req *Request) (*Response, error) {
	if r.rawMethods[strings.ToUpper(req.Method)] {
		return r.raw.Do(ctx, req)
	}
	return r.standard.Do(ctx, req)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Do implements Transport
func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
