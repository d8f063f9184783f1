package record

import (
	"context"
	"fmt"

	"github.com/kompox/dnsresolver/domain/model"
	"github.com/kompox/dnsresolver/internal/logging"
)

// SetInput holds parameters for writing one record.
type SetInput struct {
	Caller model.Principal    `json:"caller"`
	Zone   model.ZoneID       `json:"zone"`
	Name   model.NameID       `json:"name"`
	Type   model.ResourceType `json:"type"`
	Data   []byte             `json:"data"`
	// SOA, when non-empty, replaces the zone SOA slot whatever Name and Type are.
	SOA []byte `json:"soa,omitempty"`
}

// SetOutput reports what the write changed.
type SetOutput struct {
	Created    bool `json:"created"` // false when an existing record was overwritten
	SOAUpdated bool `json:"soa_updated"`
	Count      int  `json:"count"`
}

// Set writes a record on behalf of the caller.
// Rejections (ErrForbiddenType, ErrConflictingSOA, ErrNotOwner) leave the store untouched.
func (u *UseCase) Set(ctx context.Context, in *SetInput) (*SetOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	logger := logging.FromContext(ctx).With("zone", in.Zone, "name", in.Name, "type", in.Type)

	ch, err := model.NewSetChange(model.RecordKey{Zone: in.Zone, Name: in.Name, Type: in.Type}, in.Data, in.SOA)
	if err != nil {
		logger.Warn(ctx, "record set rejected", "caller", in.Caller, "err", err)
		return nil, err
	}

	unlock := u.lockZone(in.Zone)
	defer unlock()

	if err := u.authorize(ctx, in.Caller, in.Zone); err != nil {
		logger.Warn(ctx, "record set rejected", "caller", in.Caller, "err", err)
		return nil, err
	}
	res, err := u.Repos.Record.Apply(ctx, ch)
	if err != nil {
		return nil, fmt.Errorf("set record: %w", err)
	}
	logger.Info(ctx, "record set", "caller", in.Caller, "created", res.Created, "soaUpdated", res.SOAUpdated, "count", res.Count)
	return &SetOutput{Created: res.Created, SOAUpdated: res.SOAUpdated, Count: res.Count}, nil
}
