package inmem

import (
	"context"
	"fmt"

	"github.com/kompox/dnsresolver/config/resolvercfg"
	"github.com/kompox/dnsresolver/domain"
)

// Store provides a unified interface for all in-memory repositories.
type Store struct {
	ZoneRepository   *ZoneRepository
	RecordRepository *RecordRepository
}

// NewStore creates a new in-memory store with all repositories.
func NewStore() *Store {
	return &Store{
		ZoneRepository:   NewZoneRepository(),
		RecordRepository: NewRecordRepository(),
	}
}

// Repositories exposes the store through the domain interfaces.
func (s *Store) Repositories() *domain.Repositories {
	return &domain.Repositories{Zone: s.ZoneRepository, Record: s.RecordRepository}
}

// LoadFromConfig loads a dnsresolver.yml configuration into the memory store.
// Seed records bypass authorization; they are applied as the operator's bootstrap.
func (s *Store) LoadFromConfig(ctx context.Context, cfg *resolvercfg.Root) error {
	zones, changes, err := cfg.ToModels()
	if err != nil {
		return err
	}
	for _, z := range zones {
		if err := s.ZoneRepository.Put(ctx, z); err != nil {
			return fmt.Errorf("put zone %q: %w", z.Name, err)
		}
	}
	for _, ch := range changes {
		if _, err := s.RecordRepository.Apply(ctx, ch); err != nil {
			return fmt.Errorf("seed record %s/%s: %w", ch.Key.Zone, ch.Key.Type, err)
		}
	}
	return nil
}

// LoadFromFile loads a dnsresolver.yml file into the memory store.
func (s *Store) LoadFromFile(ctx context.Context, path string) error {
	cfg, err := resolvercfg.Load(path)
	if err != nil {
		return err
	}
	return s.LoadFromConfig(ctx, cfg)
}
