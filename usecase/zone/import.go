package zone

import (
	"context"
	"fmt"

	"github.com/kompox/dnsresolver/config/resolvercfg"
	"github.com/kompox/dnsresolver/internal/logging"
)

// ImportInput carries a dnsresolver.yml document.
type ImportInput struct {
	Config *resolvercfg.Root `json:"config"`
}

// ImportOutput counts what was written.
type ImportOutput struct {
	Zones   int `json:"zones"`
	Records int `json:"records"`
}

// Import writes the zones and seed records of a configuration document.
// It is the operator bootstrap: seed records are applied without authorization.
func (u *UseCase) Import(ctx context.Context, in *ImportInput) (*ImportOutput, error) {
	if in == nil || in.Config == nil {
		return nil, fmt.Errorf("config is nil")
	}
	zones, changes, err := in.Config.ToModels()
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, z := range zones {
		if err := u.Repos.Zone.Put(ctx, z); err != nil {
			return nil, fmt.Errorf("put zone %q: %w", z.Name, err)
		}
	}
	for _, ch := range changes {
		if _, err := u.Repos.Record.Apply(ctx, ch); err != nil {
			return nil, fmt.Errorf("seed record %s/%s: %w", ch.Key.Zone, ch.Key.Type, err)
		}
	}
	logging.FromContext(ctx).Info(ctx, "config imported", "zones", len(zones), "records", len(changes))
	return &ImportOutput{Zones: len(zones), Records: len(changes)}, nil
}
