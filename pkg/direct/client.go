package direct

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirosfoundation/go-paygw/pkg/config"
	"github.com/sirosfoundation/go-paygw/pkg/gwerr"
	"github.com/sirosfoundation/go-paygw/pkg/retry"
	"github.com/sirosfoundation/go-paygw/pkg/signing"
	"github.com/sirosfoundation/go-paygw/pkg/transport"
)

// Header names sent on every Direct API call
const (
	HeaderClientID      = "clientId"
	HeaderMerchantID    = "merchantId"
	HeaderMerchantKey   = "merchantKey"
	HeaderNonce         = "nonce"
	HeaderTimestamp     = "timestamp"
	HeaderAuthorization = "authorization"
	HeaderContentType   = "Content-Type"

	contentTypeJSON = "application/json"
)

// Result is a decoded JSON response object. An empty response body decodes
// to an empty, non-nil Result.
type Result map[string]any

// Decode re-encodes the result into v, typically a caller-defined struct.
func (r Result) Decode(v any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Client is the Direct API base client. It signs, sends and decodes calls
// and applies the retry policy. It holds no per-call state and is safe for
// concurrent use.
type Client struct {
	clientID    string
	merchantID  string
	merchantKey string

	baseURL  string
	basePath string
	debug    bool

	signer    *signing.Signer
	retry     retry.Policy
	transport transport.Transport
	logger    *slog.Logger
	now       func() time.Time
	nonce     func() string
}

// Option configures a Client
type Option func(*Client)

// WithTransport replaces the default method-routed transport.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger used for retry warnings and debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithNonce sets the nonce source.
func WithNonce(nonce func() string) Option {
	return func(c *Client) {
		c.nonce = nonce
	}
}

// NewClient validates cfg and builds a client. Every missing required key is
// reported in a single *gwerr.ConfigurationError.
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.RequireDirect(); err != nil {
		return nil, err
	}

	c := &Client{
		clientID:    cfg.ClientID,
		merchantID:  cfg.MerchantID,
		merchantKey: cfg.MerchantKey,
		baseURL:     cfg.ResolvedBaseURL(),
		basePath:    cfg.ResolvedBasePath(),
		debug:       cfg.ResolvedDebug(),
		signer:      signing.NewSigner(cfg.ClientSecret, cfg.MerchantID),
		retry:       cfg.Retry,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.nonce == nil {
		c.nonce = signing.NewNonce
	}
	if c.transport == nil {
		httpsConfig := transport.DefaultHTTPSConfig()
		if cfg.Timeout > 0 {
			httpsConfig.Timeout = cfg.Timeout
		}
		c.transport = transport.NewMethodRouter(
			transport.NewHTTPSClient(httpsConfig),
			transport.NewRawClient(httpsConfig, c.logger),
			cfg.RawMethods,
		)
	}

	return c, nil
}

// BaseURL returns the resolved host URL
func (c *Client) BaseURL() string { return c.baseURL }

// Debug reports whether debug tracing is enabled
func (c *Client) Debug() bool { return c.debug }

// Get sends a GET request
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, headers map[string]string) (Result, error) {
	return c.Send(ctx, http.MethodGet, endpoint, query, headers, nil)
}

// Post sends a POST request with a JSON body
func (c *Client) Post(ctx context.Context, endpoint string, query url.Values, headers map[string]string, body any) (Result, error) {
	return c.Send(ctx, http.MethodPost, endpoint, query, headers, body)
}

// Put sends a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, endpoint string, query url.Values, headers map[string]string, body any) (Result, error) {
	return c.Send(ctx, http.MethodPut, endpoint, query, headers, body)
}

// Delete sends a DELETE request
func (c *Client) Delete(ctx context.Context, endpoint string, query url.Values, headers map[string]string) (Result, error) {
	return c.Send(ctx, http.MethodDelete, endpoint, query, headers, nil)
}

// Send signs and sends one call. body is JSON-encoded unless nil. Failure
// statuses are retried as the policy allows; the final failure is returned
// as a *gwerr.RequestError.
func (c *Client) Send(ctx context.Context, method, endpoint string, query url.Values, headers map[string]string, body any) (Result, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, gwerr.Argumentf("encoding request body: %v", err)
		}
	}
	return c.send(ctx, strings.ToUpper(method), endpoint, query, headers, payload, 0)
}

// send performs one attempt; retries is the number already made for this call.
func (c *Client) send(ctx context.Context, method, endpoint string, query url.Values, headers map[string]string, payload []byte, retries int) (Result, error) {
	req := c.newRequest(method, endpoint, query, headers, payload)

	start := time.Now()
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("direct api %s %s: %w", method, endpoint, err)
	}

	if c.debug {
		c.logger.Debug("direct api call",
			"method", method,
			"url", req.URL,
			"status", resp.StatusCode,
			"duration", time.Since(start))
	}

	if resp.IsError() {
		if c.retry.ShouldRetry(endpoint, resp.StatusCode, retries) {
			retries++
			c.logger.Warn("retrying direct api request",
				"attempt", retries,
				"endpoint", endpoint,
				"status", resp.StatusCode)

			if err := wait(ctx, c.retry.Backoff(resp.StatusCode)); err != nil {
				return nil, err
			}
			return c.send(ctx, method, endpoint, query, headers, payload, retries)
		}
		return nil, &gwerr.RequestError{Request: req, Response: resp}
	}

	result, err := decodeResult(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("direct api %s %s: %w", method, endpoint, err)
	}
	return result, nil
}

// newRequest builds a signed request with a fresh nonce and timestamp.
// Computed headers win over caller headers with the same name.
func (c *Client) newRequest(method, endpoint string, query url.Values, headers map[string]string, payload []byte) *transport.Request {
	target := c.buildURL(endpoint, query)
	nonce := c.nonce()
	timestamp := signing.Timestamp(c.now())

	header := make(http.Header, len(headers)+7)
	for key, value := range headers {
		header[key] = []string{value}
	}

	computed := []struct{ key, value string }{
		{HeaderClientID, c.clientID},
		{HeaderMerchantID, c.merchantID},
		{HeaderMerchantKey, c.merchantKey},
		{HeaderNonce, nonce},
		{HeaderTimestamp, timestamp},
		{HeaderAuthorization, c.signer.Sign(method, target, payload, nonce, timestamp)},
		{HeaderContentType, contentTypeJSON},
	}
	for _, h := range computed {
		for existing := range header {
			if strings.EqualFold(existing, h.key) {
				delete(header, existing)
			}
		}
		header[h.key] = []string{h.value}
	}

	return &transport.Request{
		Method: method,
		URL:    target,
		Header: header,
		Body:   payload,
	}
}

func (c *Client) buildURL(endpoint string, query url.Values) string {
	target := c.baseURL + "/" + c.basePath + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func decodeResult(body []byte) (Result, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Result{}, nil
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if result == nil {
		// a literal JSON null
		return Result{}, nil
	}
	return result, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
