package transport

import (
	"bufio"
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/textproto"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"
)

// DefaultSocketTimeout bounds a whole raw-stream exchange when the context
// carries no deadline.
const DefaultSocketTimeout = 60 * time.Second

// RawClient writes HTTP/1.1 requests directly to a connection and reads the
// literal response stream. The gateway mishandles POST and PUT bodies sent by
// the standard client, so those calls go through here.
//
// A connection that cannot be opened or written, or a response with no
// observable status line and headers, is reported as a synthesized 504.
type RawClient struct {
	config *HTTPSConfig
	dialer *net.Dialer
	logger *slog.Logger
}

// NewRawClient creates a raw-stream client. TLS settings come from config.
func NewRawClient(config *HTTPSConfig, logger *slog.Logger) *RawClient {
	if config == nil {
		config = DefaultHTTPSConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RawClient{
		config: config,
		dialer: &net.Dialer{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Do implements Transport
func (c *RawClient) Do(ctx context.Context, req *Request) (*Response, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if err := validHeader(req.Header); err != nil {
		return nil, err
	}

	conn, err := c.dial(ctx, u)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("raw transport connect failed", "host", u.Host, "error", err)
		return GatewayTimeout("connect: " + err.Error()), nil
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	deadline := time.Now().Add(DefaultSocketTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return GatewayTimeout("set deadline: " + err.Error()), nil
	}

	if _, err := conn.Write(encodeRequest(req, u)); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("raw transport write failed", "host", u.Host, "error", err)
		return GatewayTimeout("write: " + err.Error()), nil
	}

	raw, err := io.ReadAll(conn)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil && len(raw) == 0 {
		c.logger.Warn("raw transport read failed", "host", u.Host, "error", err)
		return GatewayTimeout("read: " + err.Error()), nil
	}

	resp, ok := ParseRawResponse(raw)
	if !ok {
		c.logger.Warn("raw transport observed no response headers", "host", u.Host)
		return GatewayTimeout("no response headers"), nil
	}
	if truncated(resp) {
		c.logger.Warn("raw transport received a short body", "host", u.Host,
			"status", resp.StatusCode, "received", len(resp.Body))
		return GatewayTimeout("short response body"), nil
	}
	return resp, nil
}

func (c *RawClient) dial(ctx context.Context, u *url.URL) (net.Conn, error) {
	host := u.Host
	if u.Port() == "" {
		if u.Scheme == "https" {
			host = net.JoinHostPort(u.Hostname(), "443")
		} else {
			host = net.JoinHostPort(u.Hostname(), "80")
		}
	}

	if u.Scheme == "http" {
		return c.dialer.DialContext(ctx, "tcp", host)
	}

	tlsConfig := c.config.tlsConfig()
	tlsConfig.ServerName = u.Hostname()
	tlsDialer := &tls.Dialer{NetDialer: c.dialer, Config: tlsConfig}
	return tlsDialer.DialContext(ctx, "tcp", host)
}

// validHeader rejects header names and values that cannot be written to the
// wire as a single header line.
func validHeader(header http.Header) error {
	for key, values := range header {
		if !httpguts.ValidHeaderFieldName(key) {
			return fmt.Errorf("invalid header field name %q", key)
		}
		for _, v := range values {
			if !httpguts.ValidHeaderFieldValue(v) {
				return fmt.Errorf("invalid header field value for %q", key)
			}
		}
	}
	return nil
}

// encodeRequest renders the request line, headers and body. Header order is
// sorted so that the wire form is stable.
func encodeRequest(req *Request, u *url.URL) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s HTTP/1.1\r\n", req.Method, u.RequestURI())
	fmt.Fprintf(&buf, "Host: %s\r\n", u.Host)

	keys := make([]string, 0, len(req.Header))
	for key := range req.Header {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	hasUserAgent := false
	for _, key := range keys {
		canonical := textproto.CanonicalMIMEHeaderKey(key)
		switch canonical {
		case "Host", "Content-Length", "Connection":
			continue
		case "User-Agent":
			hasUserAgent = true
		}
		for _, v := range req.Header[key] {
			fmt.Fprintf(&buf, "%s: %s\r\n", key, v)
		}
	}
	if !hasUserAgent {
		fmt.Fprintf(&buf, "User-Agent: %s\r\n", UserAgent)
	}
	fmt.Fprintf(&buf, "Content-Length: %d\r\n", len(req.Body))
	buf.WriteString("Connection: close\r\n\r\n")
	buf.Write(req.Body)
	return buf.Bytes()
}

// GatewayTimeout synthesizes the response used when the raw stream produced
// nothing usable.
func GatewayTimeout(detail string) *Response {
	return &Response{
		StatusCode: http.StatusGatewayTimeout,
		Proto:      "HTTP/1.1",
		Reason:     http.StatusText(http.StatusGatewayTimeout),
		Header:     http.Header{},
		Body:       []byte(detail),
	}
}

// ParseRawResponse parses a complete response stream read until EOF. Every
// header block is consumed, including interim 1xx blocks and redirect
// responses, and the status of the last status line wins.
// ok is false when no complete status line and header block is present.
func ParseRawResponse(raw []byte) (*Response, bool) {
	var statusLines []string
	var header http.Header
	rest := raw

	for {
		end := bytes.Index(rest, []byte("\r\n\r\n"))
		if end < 0 || !bytes.HasPrefix(rest, []byte("HTTP/")) {
			if header == nil {
				return nil, false
			}
			break
		}

		lines := strings.Split(string(rest[:end]), "\r\n")
		code, _, _, ok := ParseStatusLine(lines[0])
		if !ok {
			return nil, false
		}
		statusLines = append(statusLines, lines[0])
		header = parseHeaderLines(lines[1:])
		rest = rest[end+4:]

		next, more := nextStatusBlock(code, header, rest)
		if !more {
			break
		}
		rest = next
	}

	code, proto, reason, ok := LastStatusLine(statusLines)
	if !ok {
		return nil, false
	}

	return &Response{
		StatusCode: code,
		Proto:      proto,
		Reason:     reason,
		Header:     header,
		Body:       decodeBody(header, rest),
	}, true
}

// nextStatusBlock reports whether another header block follows the block just
// parsed, skipping that block's Content-Length body when it has one.
func nextStatusBlock(code int, header http.Header, rest []byte) ([]byte, bool) {
	if code >= 200 {
		if n, ok := contentLength(header); ok && n <= len(rest) {
			rest = rest[n:]
		}
	}
	return rest, bytes.HasPrefix(rest, []byte("HTTP/"))
}

func contentLength(header http.Header) (int, bool) {
	cl := header.Get("Content-Length")
	if cl == "" {
		return 0, false
	}
	n, err := strconv.Atoi(cl)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// truncated reports whether resp carries fewer body bytes than its
// Content-Length announced.
func truncated(resp *Response) bool {
	if strings.EqualFold(resp.Header.Get("Transfer-Encoding"), "chunked") {
		return false
	}
	n, ok := contentLength(resp.Header)
	return ok && len(resp.Body) < n
}

// LastStatusLine parses the last status line in lines.
func LastStatusLine(lines []string) (code int, proto, reason string, ok bool) {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], "HTTP/") {
			return ParseStatusLine(lines[i])
		}
	}
	return 0, "", "", false
}

// ParseStatusLine splits "HTTP/1.1 404 Not Found" into its parts. The reason
// phrase may be empty.
func ParseStatusLine(line string) (code int, proto, reason string, ok bool) {
	proto, rest, found := strings.Cut(strings.TrimSpace(line), " ")
	if !found || !strings.HasPrefix(proto, "HTTP/") {
		return 0, "", "", false
	}
	codeText, reason, _ := strings.Cut(rest, " ")
	code, err := strconv.Atoi(codeText)
	if err != nil || code < 100 || code > 999 {
		return 0, "", "", false
	}
	return code, proto, strings.TrimSpace(reason), true
}

func parseHeaderLines(lines []string) http.Header {
	header := make(http.Header, len(lines))
	for _, line := range lines {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		header.Add(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return header
}

func decodeBody(header http.Header, body []byte) []byte {
	if strings.EqualFold(header.Get("Transfer-Encoding"), "chunked") {
		decoded, err := io.ReadAll(httputil.NewChunkedReader(bufio.NewReader(bytes.NewReader(body))))
		if err == nil || errors.Is(err, io.ErrUnexpectedEOF) {
			return decoded
		}
		return body
	}
	if n, ok := contentLength(header); ok && n < len(body) {
		return body[:n]
	}
	return body
}
