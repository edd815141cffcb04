package sevd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-paygw/pkg/config"
	"github.com/sirosfoundation/go-paygw/pkg/gwerr"
	"github.com/sirosfoundation/go-paygw/pkg/retry"
	"github.com/sirosfoundation/go-paygw/pkg/transport"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewClient_MissingConfig(t *testing.T) {
	_, err := NewClient(&config.Config{ClientID: "c", MerchantKey: "k"})

	var cfgErr *gwerr.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"application_id", "client_secret", "merchant_id", "language_id"}, cfgErr.Missing)
}

func TestNewClient_URL(t *testing.T) {
	c, err := NewClient(testConfig())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSEVDURL, c.URL())
	assert.IsType(t, &transport.RawClient{}, c.transport)

	cfg := testConfig()
	cfg.SEVDURL = "https://sevd.test/envelope"
	c, err = NewClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://sevd.test/envelope", c.URL())
}

func TestUISale_AgainstServer(t *testing.T) {
	var received atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost ||
			r.Header.Get("Content-Type") != "application/x-www-form-urlencoded" ||
			r.Header.Get("Accept") != "application/xml" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		received.Store(r.PostForm.Get("request"))
		io.WriteString(w, "<Response_v1>TOKEN&amp;ENVELOPE</Response_v1>")
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.SEVDURL = server.URL + "/sevd/frmEnvelope.aspx"

	res, err := Get(RequestCharge, cfg, quiet)
	require.NoError(t, err)
	charge := res.(*ChargeRequest)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	token, err := charge.UISale(ctx, sampleTx, Customer{Name: Name{FirstName: "Ada & Co"}}, true, UISettings{})
	require.NoError(t, err)
	assert.Equal(t, "<Response_v1>TOKEN&amp;ENVELOPE</Response_v1>", token, "body is returned verbatim")

	body, _ := received.Load().(string)
	require.NotEmpty(t, body)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(body))
	assert.Equal(t, "Ada & Co", doc.FindElement("//Customer/Name/FirstName").Text())
	assert.Equal(t, "11", doc.FindElement("//TransactionBase/TransactionType").Text())
}

func TestGetTokenizedRequest_ErrorStatusIsSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	tr := transport.TransportFunc(func(_ context.Context, req *transport.Request) (*transport.Response, error) {
		calls.Add(1)
		return &transport.Response{StatusCode: 503, Reason: "Service Unavailable", Body: []byte("down")}, nil
	})

	cfg := testConfig()
	cfg.Retry = retry.Policy{503: {Global: 3}}

	r, err := NewChargeRequest(cfg, WithTransport(tr), WithLogger(quiet))
	require.NoError(t, err)

	_, err = r.UISale(context.Background(), sampleTx, Customer{}, false, UISettings{})

	var reqErr *gwerr.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, 503, reqErr.StatusCode())
	assert.Equal(t, http.MethodPost, reqErr.Request.Method)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetTokenizedRequest_SynthesizedTimeout(t *testing.T) {
	tr := transport.TransportFunc(func(context.Context, *transport.Request) (*transport.Response, error) {
		return transport.GatewayTimeout("connection closed"), nil
	})
	c, err := NewClient(testConfig(), WithTransport(tr), WithLogger(quiet))
	require.NoError(t, err)

	doc := etree.NewDocument()
	doc.CreateElement("Request_v1")

	_, err = c.GetTokenizedRequest(context.Background(), doc)
	var reqErr *gwerr.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusGatewayTimeout, reqErr.StatusCode())
}

func TestGetTokenizedRequest_FormBody(t *testing.T) {
	var got *transport.Request
	tr := transport.TransportFunc(func(_ context.Context, req *transport.Request) (*transport.Response, error) {
		got = req
		return &transport.Response{StatusCode: 200, Body: []byte("ok")}, nil
	})
	c, err := NewClient(testConfig(), WithTransport(tr), WithLogger(quiet))
	require.NoError(t, err)

	doc := etree.NewDocument()
	doc.CreateElement("Request_v1").CreateElement("A").SetText("x y")

	out, err := c.GetTokenizedRequest(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	require.NotNil(t, got)
	assert.Equal(t, config.DefaultSEVDURL, got.URL)
	assert.Equal(t, "request=%3CRequest_v1%3E%3CA%3Ex+y%3C%2FA%3E%3C%2FRequest_v1%3E", string(got.Body))
}

func TestGetTokenizedRequest_EmptyDocument(t *testing.T) {
	c, err := NewClient(testConfig(), WithLogger(quiet))
	require.NoError(t, err)

	_, err = c.GetTokenizedRequest(context.Background(), etree.NewDocument())
	var argErr *gwerr.ArgumentError
	assert.True(t, errors.As(err, &argErr))

	_, err = c.GetTokenizedRequest(context.Background(), nil)
	assert.True(t, errors.As(err, &argErr))
}

func TestGetTokenizedRequest_TransportError(t *testing.T) {
	tr := transport.TransportFunc(func(context.Context, *transport.Request) (*transport.Response, error) {
		return nil, context.Canceled
	})
	c, err := NewClient(testConfig(), WithTransport(tr), WithLogger(quiet))
	require.NoError(t, err)

	doc := etree.NewDocument()
	doc.CreateElement("Request_v1")

	_, err = c.GetTokenizedRequest(context.Background(), doc)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGet_Factory(t *testing.T) {
	res, err := Get(RequestCharge, testConfig(), nil)
	require.NoError(t, err)
	assert.IsType(t, &ChargeRequest{}, res)
	assert.Equal(t, "charge", res.RequestID())

	res, err = Get("refund", testConfig(), nil)
	assert.Nil(t, res)
	var argErr *gwerr.ArgumentError
	require.True(t, errors.As(err, &argErr))

	res, err = Get(RequestCharge, &config.Config{}, nil)
	assert.Nil(t, res)
	var cfgErr *gwerr.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Len(t, cfgErr.Missing, 6)
}
