package record

import (
	"context"
	"fmt"

	"github.com/kompox/dnsresolver/domain/model"
)

// GetInput identifies one record.
type GetInput struct {
	// Zone is the zone the record belongs to.
	Zone model.ZoneID `json:"zone"`
	// Name is the record name; ignored for type SOA.
	Name model.NameID `json:"name"`
	// Type is the resource type.
	Type model.ResourceType `json:"type"`
}

// GetOutput carries the record payload.
type GetOutput struct {
	// Data is the payload, empty when the record is absent.
	Data []byte `json:"data"`
}

// Get returns the payload for the exact key. SOA reads come from the zone slot, whatever Name is.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	var (
		data []byte
		err  error
	)
	if in.Type == model.TypeSOA {
		data, err = u.Repos.Record.SOA(ctx, in.Zone)
	} else {
		data, err = u.Repos.Record.Get(ctx, model.RecordKey{Zone: in.Zone, Name: in.Name, Type: in.Type})
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return &GetOutput{Data: data}, nil
}

// HasInput identifies a record name within a zone.
type HasInput struct {
	// Zone is the zone to look in.
	Zone model.ZoneID `json:"zone"`
	// Name is the record name.
	Name model.NameID `json:"name"`
}

// HasOutput reports the live record count of a name.
type HasOutput struct {
	// HasRecords is true when at least one record is present.
	HasRecords bool `json:"has_records"`
	// Count is the number of present record types.
	Count int `json:"count"`
}

// Has reports whether any record is present under (Zone, Name).
func (u *UseCase) Has(ctx context.Context, in *HasInput) (*HasOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	n, err := u.Repos.Record.Count(ctx, in.Zone, in.Name)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	return &HasOutput{HasRecords: n > 0, Count: n}, nil
}

// ListInput identifies a record name within a zone.
type ListInput struct {
	// Zone is the zone to look in.
	Zone model.ZoneID `json:"zone"`
	// Name is the record name.
	Name model.NameID `json:"name"`
}

// ListOutput wraps the records present under a name.
type ListOutput struct {
	// Records are ordered by type.
	Records []*model.Record `json:"records"`
}

// List returns the records present under (Zone, Name) ordered by type.
// A present SOA record is reported with the zone SOA slot, as Get would.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	recs, err := u.Repos.Record.List(ctx, in.Zone, in.Name)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	for _, r := range recs {
		if r.Type != model.TypeSOA {
			continue
		}
		if r.Data, err = u.Repos.Record.SOA(ctx, in.Zone); err != nil {
			return nil, fmt.Errorf("list records: %w", err)
		}
	}
	return &ListOutput{Records: recs}, nil
}
