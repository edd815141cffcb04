// Package signing computes the HMAC-SHA512 authorization of Direct API calls.
package signing

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Signer signs Direct API requests for one merchant
type Signer struct {
	secret     []byte
	merchantID string
}

// NewSigner creates a signer keyed by the client secret
func NewSigner(clientSecret, merchantID string) *Signer {
	return &Signer{
		secret:     []byte(clientSecret),
		merchantID: merchantID,
	}
}

// SigningString concatenates the signed fields in wire order:
// method, full URL (with query), body, merchant id, nonce, timestamp.
func SigningString(method, url string, body []byte, merchantID, nonce, timestamp string) string {
	var b strings.Builder
	b.Grow(len(method) + len(url) + len(body) + len(merchantID) + len(nonce) + len(timestamp))
	b.WriteString(method)
	b.WriteString(url)
	b.Write(body)
	b.WriteString(merchantID)
	b.WriteString(nonce)
	b.WriteString(timestamp)
	return b.String()
}

// Sign returns the base64 HMAC-SHA512 of the signing string
func (s *Signer) Sign(method, url string, body []byte, nonce, timestamp string) string {
	mac := hmac.New(sha512.New, s.secret)
	mac.Write([]byte(SigningString(method, url, body, s.merchantID, nonce, timestamp)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature in constant time
func (s *Signer) Verify(signature, method, url string, body []byte, nonce, timestamp string) bool {
	expected := s.Sign(method, url, body, nonce, timestamp)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// NewNonce returns a random per-request nonce
func NewNonce() string {
	return uuid.NewString()
}

// Timestamp formats t as unix seconds
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
