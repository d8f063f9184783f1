package zone

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kompox/dnsresolver/domain/model"
	"github.com/kompox/dnsresolver/internal/logging"
	"github.com/kompox/dnsresolver/internal/namehash"
)

// RegisterInput describes a child zone to create or re-delegate.
type RegisterInput struct {
	Caller model.Principal `json:"caller"`
	// Parent is the dotted name of the parent zone; empty for the root.
	Parent string `json:"parent"`
	// Label is the single label added under Parent.
	Label string `json:"label"`
	// Owner receives the zone. Defaults to Caller. Ignored for open registration.
	Owner model.Principal `json:"owner,omitempty"`
	// OpenRegistration optionally sets first-come registration of children.
	// When nil a new zone starts closed and an existing zone keeps its setting.
	OpenRegistration *bool `json:"open_registration,omitempty"`
}

// RegisterOutput wraps the registered zone.
type RegisterOutput struct {
	Zone    *model.Zone `json:"zone"`
	Created bool        `json:"created"`
}

// Register creates the zone Label.Parent, or replaces the owner of an existing one.
// The parent owner may register freely. Under a parent with open registration anyone may
// claim a child that is unowned or already theirs, and always becomes its owner.
func (u *UseCase) Register(ctx context.Context, in *RegisterInput) (*RegisterOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: input is nil", model.ErrZoneInvalid)
	}
	label, err := namehash.NormalizeLabel(in.Label)
	if err != nil || label == "" || strings.Contains(label, ".") {
		return nil, fmt.Errorf("%w: bad label %q", model.ErrZoneInvalid, in.Label)
	}
	parentName, err := namehash.Normalize(in.Parent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrZoneInvalid, err)
	}
	parentID, err := namehash.ZoneID(parentName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrZoneInvalid, err)
	}
	childID := namehash.Child(parentID, namehash.LabelHash(label))
	childName := label
	if parentName != "" {
		childName = label + "." + parentName
	}
	logger := logging.FromContext(ctx).With("zone", childName, "caller", in.Caller)

	u.mu.Lock()
	defer u.mu.Unlock()

	parent, err := u.Repos.Zone.Get(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("parent %q: %w", parentName, err)
	}
	existing, err := u.Repos.Zone.Get(ctx, childID)
	if errors.Is(err, model.ErrZoneNotFound) {
		existing = nil
	} else if err != nil {
		return nil, err
	}

	var (
		owner  model.Principal
		denied error
	)
	switch {
	case in.Caller == "":
		denied = fmt.Errorf("%w: no caller", model.ErrNotOwner)
	case parent.Owner == in.Caller:
		owner = in.Owner
		if owner == "" {
			owner = in.Caller
		}
	case parent.OpenRegistration && (existing == nil || existing.Owner == "" || existing.Owner == in.Caller):
		owner = in.Caller
	default:
		denied = fmt.Errorf("%w: %s cannot register under %q", model.ErrNotOwner, in.Caller, parentName)
	}
	if denied != nil {
		logger.Warn(ctx, "zone register rejected", "err", denied)
		return nil, denied
	}

	now := time.Now().UTC()
	z := &model.Zone{
		ID:               childID,
		ParentID:         parentID,
		Label:            label,
		Name:             childName,
		Owner:            owner,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if existing != nil {
		z.CreatedAt = existing.CreatedAt
		z.OpenRegistration = existing.OpenRegistration
	}
	if in.OpenRegistration != nil {
		z.OpenRegistration = *in.OpenRegistration
	}
	if err := u.Repos.Zone.Put(ctx, z); err != nil {
		return nil, err
	}
	logger.Info(ctx, "zone registered", "owner", owner, "created", existing == nil)
	return &RegisterOutput{Zone: z, Created: existing == nil}, nil
}
