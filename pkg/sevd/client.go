package sevd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/beevik/etree"

	"github.com/sirosfoundation/go-paygw/pkg/config"
	"github.com/sirosfoundation/go-paygw/pkg/gwerr"
	"github.com/sirosfoundation/go-paygw/pkg/transport"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	acceptXML       = "application/xml"

	// formField carries the serialized Request_v1 document
	formField = "request"
)

// Client posts Request_v1 documents to the hosted-checkout endpoint and
// returns the tokenized envelope. It is safe for concurrent use.
type Client struct {
	applicationID string
	languageID    string
	merchantID    string
	merchantKey   string

	url   string
	debug bool

	transport transport.Transport
	logger    *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTransport replaces the default raw-stream transport.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient validates cfg and builds a client.
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.RequireSEVD(); err != nil {
		return nil, err
	}

	c := &Client{
		applicationID: cfg.ApplicationID,
		languageID:    cfg.LanguageID,
		merchantID:    cfg.MerchantID,
		merchantKey:   cfg.MerchantKey,
		url:           cfg.ResolvedSEVDURL(),
		debug:         cfg.ResolvedDebug(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.transport == nil {
		c.transport = transport.NewRawClient(transport.DefaultHTTPSConfig(), c.logger)
	}

	return c, nil
}

// URL returns the resolved endpoint
func (c *Client) URL() string { return c.url }

// GetTokenizedRequest serializes doc, posts it as the "request" form field and
// returns the response body unmodified. There is exactly one attempt.
func (c *Client) GetTokenizedRequest(ctx context.Context, doc *etree.Document) (string, error) {
	if doc == nil || doc.Root() == nil {
		return "", gwerr.Argumentf("request document is empty")
	}

	xml, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serializing request document: %w", err)
	}

	req := &transport.Request{
		Method: http.MethodPost,
		URL:    c.url,
		Header: http.Header{
			"Content-Type": {contentTypeForm},
			"Accept":       {acceptXML},
		},
		Body: []byte(url.Values{formField: {xml}}.Encode()),
	}

	start := time.Now()
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("sevd request: %w", err)
	}

	if c.debug {
		c.logger.Debug("sevd call",
			"url", c.url,
			"status", resp.StatusCode,
			"duration", time.Since(start))
	}

	if resp.IsError() {
		return "", &gwerr.RequestError{Request: req, Response: resp}
	}
	return string(resp.Body), nil
}
