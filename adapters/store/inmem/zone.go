package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/kompox/dnsresolver/domain"
	"github.com/kompox/dnsresolver/domain/model"
)

// ZoneRepository is a thread-safe in-memory implementation.
type ZoneRepository struct {
	mu    sync.RWMutex
	items map[model.ZoneID]*model.Zone
}

func NewZoneRepository() *ZoneRepository {
	return &ZoneRepository{items: make(map[model.ZoneID]*model.Zone)}
}

func (r *ZoneRepository) Put(_ context.Context, z *model.Zone) error {
	if z == nil {
		return model.ErrZoneInvalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *z
	r.items[z.ID] = &cp
	return nil
}

func (r *ZoneRepository) Get(_ context.Context, id model.ZoneID) (*model.Zone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrZoneNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *ZoneRepository) List(_ context.Context) ([]*model.Zone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Zone, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ZoneRepository) Delete(_ context.Context, id model.ZoneID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return model.ErrZoneNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.ZoneRepository = (*ZoneRepository)(nil)
