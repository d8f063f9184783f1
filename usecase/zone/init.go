package zone

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kompox/dnsresolver/domain/model"
	"github.com/kompox/dnsresolver/internal/logging"
)

// InitInput describes the root zone to create.
type InitInput struct {
	Owner            model.Principal `json:"owner"`
	OpenRegistration bool            `json:"open_registration"`
}

// InitOutput wraps the root zone.
type InitOutput struct {
	Zone    *model.Zone `json:"zone"`
	Created bool        `json:"created"` // false when the root already existed
}

// Init creates the root zone when it is missing. An existing root is returned untouched.
func (u *UseCase) Init(ctx context.Context, in *InitInput) (*InitOutput, error) {
	if in == nil || in.Owner == "" {
		return nil, fmt.Errorf("%w: root owner is required", model.ErrZoneInvalid)
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	existing, err := u.Repos.Zone.Get(ctx, model.RootZoneID)
	if err == nil {
		return &InitOutput{Zone: existing}, nil
	}
	if !errors.Is(err, model.ErrZoneNotFound) {
		return nil, err
	}
	now := time.Now().UTC()
	root := &model.Zone{
		ID:               model.RootZoneID,
		Owner:            in.Owner,
		OpenRegistration: in.OpenRegistration,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := u.Repos.Zone.Put(ctx, root); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info(ctx, "root zone created", "owner", in.Owner)
	return &InitOutput{Zone: root, Created: true}, nil
}
