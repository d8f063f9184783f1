package zone

import (
	"context"
	"errors"
	"fmt"

	"github.com/kompox/dnsresolver/domain/model"
	"github.com/kompox/dnsresolver/internal/logging"
)

// DeleteInput identifies the zone to unregister.
type DeleteInput struct {
	// Caller must own the zone or its parent.
	Caller model.Principal `json:"caller"`
	// Zone is the zone to remove from the registry.
	Zone model.ZoneID `json:"zone"`
}

// DeleteOutput wraps the removed zone.
type DeleteOutput struct {
	// Zone is the registry entry as it was before deletion.
	Zone *model.Zone `json:"zone"`
}

// Delete unregisters a zone that has no registered children. Its records stay in
// the store but nobody owns the zone until it is registered again.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: input is nil", model.ErrZoneInvalid)
	}
	if in.Zone == model.RootZoneID {
		return nil, fmt.Errorf("%w: the root zone cannot be deleted", model.ErrZoneInvalid)
	}
	logger := logging.FromContext(ctx).With("zone", in.Zone, "caller", in.Caller)

	u.mu.Lock()
	defer u.mu.Unlock()

	z, err := u.Repos.Zone.Get(ctx, in.Zone)
	if err != nil {
		return nil, err
	}
	allowed := in.Caller != "" && z.Owner == in.Caller
	if !allowed && in.Caller != "" {
		parent, err := u.Repos.Zone.Get(ctx, z.ParentID)
		if err != nil && !errors.Is(err, model.ErrZoneNotFound) {
			return nil, err
		}
		allowed = parent != nil && parent.Owner == in.Caller
	}
	if !allowed {
		err := fmt.Errorf("%w: %s controls neither zone %s nor its parent", model.ErrNotOwner, in.Caller, in.Zone)
		logger.Warn(ctx, "zone delete rejected", "err", err)
		return nil, err
	}

	zones, err := u.Repos.Zone.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range zones {
		if !c.IsRoot() && c.ParentID == in.Zone {
			return nil, fmt.Errorf("%w: zone %q still has child zone %q", model.ErrZoneInvalid, z.Name, c.Name)
		}
	}
	if err := u.Repos.Zone.Delete(ctx, in.Zone); err != nil {
		return nil, err
	}
	logger.Info(ctx, "zone deleted", "name", z.Name)
	return &DeleteOutput{Zone: z}, nil
}
