// Package transport implements the HTTP transports used by the gateway clients.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// TLS version constants
const (
	TLS12 = tls.VersionTLS12
	TLS13 = tls.VersionTLS13
)

// UserAgent is sent on every request.
const UserAgent = "go-paygw/1.0"

// HTTPSConfig contains client TLS and timeout configuration
type HTTPSConfig struct {
	MinTLSVersion   uint16
	MaxTLSVersion   uint16
	RootCAs         *x509.CertPool
	Timeout         time.Duration
	IdleConnTimeout time.Duration
}

// DefaultHTTPSConfig returns a default HTTPS configuration
func DefaultHTTPSConfig() *HTTPSConfig {
	return &HTTPSConfig{
		MinTLSVersion:   TLS12,
		MaxTLSVersion:   TLS13,
		Timeout:         30 * time.Second,
		IdleConnTimeout: 90 * time.Second,
	}
}

func (c *HTTPSConfig) tlsConfig() *tls.Config {
	return &tls.Config{
		MinVersion: c.MinTLSVersion,
		MaxVersion: c.MaxTLSVersion,
		RootCAs:    c.RootCAs,
	}
}

// HTTPSClient is the standard net/http transport
type HTTPSClient struct {
	client *http.Client
	config *HTTPSConfig
}

// NewHTTPSClient creates a new HTTPS client
func NewHTTPSClient(config *HTTPSConfig) *HTTPSClient {
	if config == nil {
		config = DefaultHTTPSConfig()
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		TLSClientConfig:     config.tlsConfig(),
		IdleConnTimeout:     config.IdleConnTimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	return &HTTPSClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		config: config,
	}
}

// Do sends the request. Any HTTP status is returned as a Response; an error
// means the exchange itself failed.
func (c *HTTPSClient) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", UserAgent)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Proto:      resp.Proto,
		Reason:     reasonPhrase(resp.Status, resp.StatusCode),
		Header:     resp.Header,
		Body:       responseBody,
	}, nil
}

// reasonPhrase strips the leading code from a net/http status such as "200 OK".
func reasonPhrase(status string, code int) string {
	if reason, ok := strings.CutPrefix(status, strconv.Itoa(code)); ok {
		return strings.TrimSpace(reason)
	}
	return http.StatusText(code)
}
