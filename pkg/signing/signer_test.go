package signing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret     = "secret-key"
	testMerchantID = "999999999997"
	testNonce      = "nonce-123"
	testTimestamp  = "1700000000"
)

func TestSign_GoldenValues(t *testing.T) {
	signer := NewSigner(testSecret, testMerchantID)

	tests := []struct {
		name   string
		method string
		url    string
		body   []byte
		want   string
	}{
		{
			name:   "post with body",
			method: "POST",
			url:    "https://api-cert.sagepayments.com/bankcard/v1/charges?type=Sale",
			body:   []byte(`{"amount":"1.00"}`),
			want:   "Amrg3zpcZKqXy873+nialgvUcENRoP52UQ8IteUQFuLdORnjch8UOFUiijI846i4i0y22Xy1uIpfrrblpmZ5QA==",
		},
		{
			name:   "get without body",
			method: "GET",
			url:    "https://api-cert.sagepayments.com/bankcard/v1/ping",
			body:   nil,
			want:   "nGM9tMiidSKpOOKGP8dzlb7HTuAkdXf9D3+BDyhi0yMUc7IMBd9TEIN1dMXzsUcVIt4JfLesaqaVwdccBYTV2A==",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := signer.Sign(tt.method, tt.url, tt.body, testNonce, testTimestamp)
			assert.Equal(t, tt.want, got)

			again := signer.Sign(tt.method, tt.url, tt.body, testNonce, testTimestamp)
			assert.Equal(t, got, again, "signature must be reproducible")
		})
	}
}

func TestSign_DependsOnEveryField(t *testing.T) {
	signer := NewSigner(testSecret, testMerchantID)
	base := signer.Sign("POST", "https://x/charges", []byte("{}"), testNonce, testTimestamp)

	assert.NotEqual(t, base, signer.Sign("PUT", "https://x/charges", []byte("{}"), testNonce, testTimestamp))
	assert.NotEqual(t, base, signer.Sign("POST", "https://x/credits", []byte("{}"), testNonce, testTimestamp))
	assert.NotEqual(t, base, signer.Sign("POST", "https://x/charges", []byte(`{"a":1}`), testNonce, testTimestamp))
	assert.NotEqual(t, base, signer.Sign("POST", "https://x/charges", []byte("{}"), "other", testTimestamp))
	assert.NotEqual(t, base, signer.Sign("POST", "https://x/charges", []byte("{}"), testNonce, "1700000001"))
	assert.NotEqual(t, base, NewSigner(testSecret, "other").Sign("POST", "https://x/charges", []byte("{}"), testNonce, testTimestamp))
	assert.NotEqual(t, base, NewSigner("other", testMerchantID).Sign("POST", "https://x/charges", []byte("{}"), testNonce, testTimestamp))
}

func TestSigningString(t *testing.T) {
	got := SigningString("GET", "https://x/ping", nil, "m", "n", "1")
	assert.Equal(t, "GEThttps://x/pingmn1", got)

	got = SigningString("POST", "https://x/charges?type=Auth", []byte(`{"a":1}`), "m", "n", "1")
	assert.Equal(t, `POSThttps://x/charges?type=Auth{"a":1}mn1`, got)
}

func TestVerify(t *testing.T) {
	signer := NewSigner(testSecret, testMerchantID)
	sig := signer.Sign("GET", "https://x/ping", nil, testNonce, testTimestamp)

	assert.True(t, signer.Verify(sig, "GET", "https://x/ping", nil, testNonce, testTimestamp))
	assert.False(t, signer.Verify(sig, "GET", "https://x/status", nil, testNonce, testTimestamp))
}

func TestNewNonce(t *testing.T) {
	a, b := NewNonce(), NewNonce()
	assert.NotEqual(t, a, b)

	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "1700000000", Timestamp(time.Unix(1700000000, 999)))
}
