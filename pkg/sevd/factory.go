package sevd

import (
	"log/slog"

	"github.com/sirosfoundation/go-paygw/pkg/config"
	"github.com/sirosfoundation/go-paygw/pkg/gwerr"
)

// RequestCharge identifies the hosted charge request
const RequestCharge = "charge"

// RequestClient is a request-specific SEVD client returned by Get.
type RequestClient interface {
	RequestID() string
}

// Get builds the request client for requestID. A nil logger means
// slog.Default().
func Get(requestID string, cfg *config.Config, logger *slog.Logger, opts ...Option) (RequestClient, error) {
	if logger != nil {
		opts = append([]Option{WithLogger(logger)}, opts...)
	}

	switch requestID {
	case RequestCharge:
		r, err := NewChargeRequest(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, gwerr.Argumentf("unknown sevd request %q", requestID)
	}
}
