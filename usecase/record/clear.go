package record

import (
	"context"
	"fmt"

	"github.com/kompox/dnsresolver/domain/model"
	"github.com/kompox/dnsresolver/internal/logging"
)

// ClearInput holds parameters for removing one record.
type ClearInput struct {
	Caller model.Principal    `json:"caller"`
	Zone   model.ZoneID       `json:"zone"`
	Name   model.NameID       `json:"name"`
	Type   model.ResourceType `json:"type"`
	SOA    []byte             `json:"soa,omitempty"`
}

// ClearOutput reports what the removal changed.
type ClearOutput struct {
	Removed    bool `json:"removed"` // false when the record was already absent
	SOAUpdated bool `json:"soa_updated"`
	Count      int  `json:"count"`
}

// Clear removes a record on behalf of the caller. Clearing an absent record is not an error.
// The zone SOA slot survives clearing type SOA; only a supplied SOA payload replaces it.
func (u *UseCase) Clear(ctx context.Context, in *ClearInput) (*ClearOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	logger := logging.FromContext(ctx).With("zone", in.Zone, "name", in.Name, "type", in.Type)

	unlock := u.lockZone(in.Zone)
	defer unlock()

	if err := u.authorize(ctx, in.Caller, in.Zone); err != nil {
		logger.Warn(ctx, "record clear rejected", "caller", in.Caller, "err", err)
		return nil, err
	}
	ch := model.NewClearChange(model.RecordKey{Zone: in.Zone, Name: in.Name, Type: in.Type}, in.SOA)
	res, err := u.Repos.Record.Apply(ctx, ch)
	if err != nil {
		return nil, fmt.Errorf("clear record: %w", err)
	}
	logger.Info(ctx, "record clear", "caller", in.Caller, "removed", res.Removed, "soaUpdated", res.SOAUpdated, "count", res.Count)
	return &ClearOutput{Removed: res.Removed, SOAUpdated: res.SOAUpdated, Count: res.Count}, nil
}
