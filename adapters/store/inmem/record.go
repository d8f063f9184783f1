package inmem

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/kompox/dnsresolver/domain"
	"github.com/kompox/dnsresolver/domain/model"
)

type setKey struct {
	zone model.ZoneID
	name model.NameID
}

// RecordRepository keeps records, live counters and SOA slots behind one mutex,
// so every Apply is atomic.
type RecordRepository struct {
	mu      sync.RWMutex
	records map[model.RecordKey][]byte
	counts  map[setKey]int
	soa     map[model.ZoneID][]byte
}

func NewRecordRepository() *RecordRepository {
	return &RecordRepository{
		records: make(map[model.RecordKey][]byte),
		counts:  make(map[setKey]int),
		soa:     make(map[model.ZoneID][]byte),
	}
}

func (r *RecordRepository) Apply(_ context.Context, ch *model.RecordChange) (*model.RecordChangeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := &model.RecordChangeResult{}
	sk := setKey{zone: ch.Key.Zone, name: ch.Key.Name}
	_, present := r.records[ch.Key]
	switch {
	case ch.Clear && present:
		delete(r.records, ch.Key)
		if r.counts[sk]--; r.counts[sk] <= 0 {
			delete(r.counts, sk)
		}
		res.Removed = true
	case !ch.Clear:
		if !present {
			r.counts[sk]++
			res.Created = true
		}
		r.records[ch.Key] = bytes.Clone(nonNil(ch.Data))
	}
	if len(ch.SOA) > 0 {
		r.soa[ch.Key.Zone] = bytes.Clone(ch.SOA)
		res.SOAUpdated = true
	}
	res.Count = r.counts[sk]
	return res, nil
}

func (r *RecordRepository) Get(_ context.Context, key model.RecordKey) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return bytes.Clone(r.records[key]), nil
}

func (r *RecordRepository) List(_ context.Context, zone model.ZoneID, name model.NameID) ([]*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Record
	for k, v := range r.records {
		if k.Zone == zone && k.Name == name {
			out = append(out, &model.Record{Zone: k.Zone, Name: k.Name, Type: k.Type, Data: bytes.Clone(v)})
		}
	}
	slices.SortFunc(out, func(a, b *model.Record) int { return int(a.Type) - int(b.Type) })
	return out, nil
}

func (r *RecordRepository) Count(_ context.Context, zone model.ZoneID, name model.NameID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.counts[setKey{zone: zone, name: name}], nil
}

func (r *RecordRepository) SOA(_ context.Context, zone model.ZoneID) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return bytes.Clone(r.soa[zone]), nil
}

// nonNil keeps an empty payload distinguishable from an absent record.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

var _ domain.RecordRepository = (*RecordRepository)(nil)
