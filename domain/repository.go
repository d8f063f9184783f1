package domain

import (
	"context"

	"github.com/kompox/dnsresolver/domain/model"
)

// ZoneRepository stores and retrieves Zone aggregates.
type ZoneRepository interface {
	// Put creates the zone or replaces an existing one with the same ID.
	Put(ctx context.Context, z *model.Zone) error
	Get(ctx context.Context, id model.ZoneID) (*model.Zone, error)
	List(ctx context.Context) ([]*model.Zone, error)
	Delete(ctx context.Context, id model.ZoneID) error
}

// RecordRepository stores record payloads, per-name live counters and the zone SOA slot.
// Apply must be atomic: either every effect of the change is visible or none is.
type RecordRepository interface {
	Apply(ctx context.Context, ch *model.RecordChange) (*model.RecordChangeResult, error)
	// Get returns the payload at key, or nil when absent.
	Get(ctx context.Context, key model.RecordKey) ([]byte, error)
	// List returns the records present under (zone, name) ordered by type.
	List(ctx context.Context, zone model.ZoneID, name model.NameID) ([]*model.Record, error)
	Count(ctx context.Context, zone model.ZoneID, name model.NameID) (int, error)
	// SOA returns the zone SOA slot, or nil when unset.
	SOA(ctx context.Context, zone model.ZoneID) ([]byte, error)
}

// OwnershipOracle answers which principal currently controls a zone.
// An empty principal means nobody does.
type OwnershipOracle interface {
	OwnerOf(ctx context.Context, zone model.ZoneID) (model.Principal, error)
}

// Repositories groups repository interfaces built from one db-url.
type Repositories struct {
	Zone   ZoneRepository
	Record RecordRepository
}
