package direct

import (
	"log/slog"
	"sort"

	"github.com/sirosfoundation/go-paygw/pkg/config"
	"github.com/sirosfoundation/go-paygw/pkg/gwerr"
)

// Resource identifiers understood by Get
const (
	ResourceCharges   = "charges"
	ResourceCredits   = "credits"
	ResourceAPIHealth = "api_health"
)

var resources = map[string]func(*config.Config, ...Option) (Resource, error){
	ResourceCharges: func(cfg *config.Config, opts ...Option) (Resource, error) {
		r, err := NewCharges(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return r, nil
	},
	ResourceCredits: func(cfg *config.Config, opts ...Option) (Resource, error) {
		r, err := NewCredits(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return r, nil
	},
	ResourceAPIHealth: func(cfg *config.Config, opts ...Option) (Resource, error) {
		r, err := NewAPIHealth(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return r, nil
	},
}

// Get builds the resource client for resourceID. The result can be
// asserted to *Charges, *Credits or *APIHealth. A nil logger means
// slog.Default().
func Get(resourceID string, cfg *config.Config, logger *slog.Logger, opts ...Option) (Resource, error) {
	newResource, ok := resources[resourceID]
	if !ok {
		return nil, gwerr.Argumentf("unknown direct api resource %q (known: %v)", resourceID, ResourceIDs())
	}
	if logger != nil {
		opts = append([]Option{WithLogger(logger)}, opts...)
	}
	return newResource(cfg, opts...)
}

// ResourceIDs lists the identifiers accepted by Get, sorted.
func ResourceIDs() []string {
	ids := make([]string, 0, len(resources))
	for id := range resources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
