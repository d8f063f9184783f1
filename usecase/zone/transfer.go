package zone

import (
	"context"
	"fmt"
	"time"

	"github.com/kompox/dnsresolver/domain/model"
	"github.com/kompox/dnsresolver/internal/logging"
)

// TransferInput hands a zone to a new owner.
type TransferInput struct {
	Caller model.Principal `json:"caller"`
	Zone   model.ZoneID    `json:"zone"`
	// NewOwner may be empty, which leaves the zone unowned.
	NewOwner model.Principal `json:"new_owner"`
}

// TransferOutput wraps the updated zone.
type TransferOutput struct {
	Zone *model.Zone `json:"zone"`
}

// Transfer changes the owner of a zone. Only the current owner may do it.
func (u *UseCase) Transfer(ctx context.Context, in *TransferInput) (*TransferOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: input is nil", model.ErrZoneInvalid)
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	z, err := u.Repos.Zone.Get(ctx, in.Zone)
	if err != nil {
		return nil, err
	}
	if in.Caller == "" || z.Owner != in.Caller {
		err := fmt.Errorf("%w: %s does not control zone %s", model.ErrNotOwner, in.Caller, in.Zone)
		logging.FromContext(ctx).Warn(ctx, "zone transfer rejected", "zone", in.Zone, "err", err)
		return nil, err
	}
	from := z.Owner
	z.Owner = in.NewOwner
	z.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Zone.Put(ctx, z); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info(ctx, "zone transferred", "zone", in.Zone, "from", from, "to", in.NewOwner)
	return &TransferOutput{Zone: z}, nil
}

// UpdateInput specifies zone settings the owner can change.
type UpdateInput struct {
	Caller model.Principal `json:"caller"`
	Zone   model.ZoneID    `json:"zone"`
	// OpenRegistration optionally toggles first-come registration of children.
	OpenRegistration *bool `json:"open_registration,omitempty"`
}

// UpdateOutput wraps the updated zone.
type UpdateOutput struct {
	Zone *model.Zone `json:"zone"`
}

// Update applies provided changes to a zone owned by the caller.
func (u *UseCase) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: input is nil", model.ErrZoneInvalid)
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	z, err := u.Repos.Zone.Get(ctx, in.Zone)
	if err != nil {
		return nil, err
	}
	if in.Caller == "" || z.Owner != in.Caller {
		return nil, fmt.Errorf("%w: %s does not control zone %s", model.ErrNotOwner, in.Caller, in.Zone)
	}
	if in.OpenRegistration != nil && *in.OpenRegistration != z.OpenRegistration {
		z.OpenRegistration = *in.OpenRegistration
		z.UpdatedAt = time.Now().UTC()
		if err := u.Repos.Zone.Put(ctx, z); err != nil {
			return nil, err
		}
	}
	return &UpdateOutput{Zone: z}, nil
}
