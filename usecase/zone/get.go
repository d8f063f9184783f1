package zone

import (
	"context"
	"fmt"

	"github.com/kompox/dnsresolver/domain/model"
)

// GetInput identifies a zone.
type GetInput struct {
	// Zone is the zone ID.
	Zone model.ZoneID `json:"zone"`
}

// GetOutput wraps the zone.
type GetOutput struct {
	// Zone is the registry entry.
	Zone *model.Zone `json:"zone"`
}

// Get returns a registered zone or ErrZoneNotFound.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: input is nil", model.ErrZoneInvalid)
	}
	z, err := u.Repos.Zone.Get(ctx, in.Zone)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Zone: z}, nil
}

// ListInput is empty; every zone is listed.
type ListInput struct{}

// ListOutput wraps the registered zones.
type ListOutput struct {
	// Zones are ordered by name, root first.
	Zones []*model.Zone `json:"zones"`
}

// List returns every registered zone ordered by name, root first.
func (u *UseCase) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	zones, err := u.Repos.Zone.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Zones: zones}, nil
}
