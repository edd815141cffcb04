package direct

import (
	"context"
	"net/url"
	"strings"

	"github.com/sirosfoundation/go-paygw/pkg/config"
	"github.com/sirosfoundation/go-paygw/pkg/gwerr"
)

// Charge types accepted by PostCharges
const (
	ChargeAuth  = "Auth"
	ChargeForce = "Force"
	ChargeSale  = "Sale"
)

const (
	endpointCharges = "charges"
	endpointCredits = "credits"
	endpointPing    = "ping"
	endpointStatus  = "status"
)

// Resource is a resource-specific Direct API client returned by Get.
type Resource interface {
	ResourceID() string
}

// Charges covers the charges resource.
type Charges struct {
	*Client
}

// NewCharges builds a charges client
func NewCharges(cfg *config.Config, opts ...Option) (*Charges, error) {
	c, err := NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Charges{Client: c}, nil
}

// ResourceID implements Resource
func (*Charges) ResourceID() string { return ResourceCharges }

// PostCharges creates a charge. chargeType must be exactly Auth, Force or
// Sale; anything else is rejected before any network call.
func (c *Charges) PostCharges(ctx context.Context, chargeType string, payload any) (Result, error) {
	switch chargeType {
	case ChargeAuth, ChargeForce, ChargeSale:
	default:
		return nil, gwerr.Argumentf("charge type must be one of %s, %s, %s; got %q",
			ChargeAuth, ChargeForce, ChargeSale, chargeType)
	}
	return c.Post(ctx, endpointCharges, url.Values{"type": {chargeType}}, nil, payload)
}

// PutCharges updates (captures) the charge identified by reference.
func (c *Charges) PutCharges(ctx context.Context, reference string, payload any) (Result, error) {
	endpoint, err := referenced(endpointCharges, reference)
	if err != nil {
		return nil, err
	}
	return c.Put(ctx, endpoint, nil, nil, payload)
}

// GetCharges lists charges matching query.
func (c *Charges) GetCharges(ctx context.Context, query url.Values) (Result, error) {
	return c.Get(ctx, endpointCharges, query, nil)
}

// GetChargesReference fetches one charge.
func (c *Charges) GetChargesReference(ctx context.Context, reference string) (Result, error) {
	endpoint, err := referenced(endpointCharges, reference)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, endpoint, nil, nil)
}

// DeleteChargesReference voids a charge.
func (c *Charges) DeleteChargesReference(ctx context.Context, reference string) (Result, error) {
	endpoint, err := referenced(endpointCharges, reference)
	if err != nil {
		return nil, err
	}
	return c.Delete(ctx, endpoint, nil, nil)
}

// Credits covers the credits resource.
type Credits struct {
	*Client
}

// NewCredits builds a credits client
func NewCredits(cfg *config.Config, opts ...Option) (*Credits, error) {
	c, err := NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Credits{Client: c}, nil
}

// ResourceID implements Resource
func (*Credits) ResourceID() string { return ResourceCredits }

// PostCreditsReference refunds against a prior charge.
func (c *Credits) PostCreditsReference(ctx context.Context, reference string, payload any) (Result, error) {
	endpoint, err := referenced(endpointCredits, reference)
	if err != nil {
		return nil, err
	}
	return c.Post(ctx, endpoint, nil, nil, payload)
}

// PostCredits issues a credit that is not tied to a prior charge.
func (c *Credits) PostCredits(ctx context.Context, payload any) (Result, error) {
	return c.Post(ctx, endpointCredits, nil, nil, payload)
}

// APIHealth covers the ping and status endpoints.
type APIHealth struct {
	*Client
}

// NewAPIHealth builds a health client
func NewAPIHealth(cfg *config.Config, opts ...Option) (*APIHealth, error) {
	c, err := NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &APIHealth{Client: c}, nil
}

// ResourceID implements Resource
func (*APIHealth) ResourceID() string { return ResourceAPIHealth }

// GetPing checks that the gateway is reachable.
func (c *APIHealth) GetPing(ctx context.Context) (Result, error) {
	return c.Get(ctx, endpointPing, nil, nil)
}

// GetStatus returns the gateway service status.
func (c *APIHealth) GetStatus(ctx context.Context) (Result, error) {
	return c.Get(ctx, endpointStatus, nil, nil)
}

func referenced(resource, reference string) (string, error) {
	if strings.TrimSpace(reference) == "" {
		return "", &gwerr.ArgumentError{Missing: []string{"reference"}}
	}
	return resource + "/" + url.PathEscape(reference), nil
}
