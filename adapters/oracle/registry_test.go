package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/kompox/dnsresolver/adapters/store/inmem"
	"github.com/kompox/dnsresolver/domain/model"
)

type failingZones struct{ *inmem.ZoneRepository }

func (failingZones) Get(context.Context, model.ZoneID) (*model.Zone, error) {
	return nil, errors.New("backend down")
}

func TestRegistry_OwnerOf(t *testing.T) {
	ctx := context.Background()
	zones := inmem.NewZoneRepository()
	var id model.ZoneID
	id[0] = 1
	o := NewRegistry(zones)

	if p, err := o.OwnerOf(ctx, id); err != nil || p != "" {
		t.Fatalf("unregistered zone: %q, %v", p, err)
	}
	if err := zones.Put(ctx, &model.Zone{ID: id, Owner: "alice"}); err != nil {
		t.Fatal(err)
	}
	if p, _ := o.OwnerOf(ctx, id); p != "alice" {
		t.Errorf("OwnerOf = %q, want alice", p)
	}
	// Transfers are visible on the next lookup.
	if err := zones.Put(ctx, &model.Zone{ID: id, Owner: "bob"}); err != nil {
		t.Fatal(err)
	}
	if p, _ := o.OwnerOf(ctx, id); p != "bob" {
		t.Errorf("OwnerOf after transfer = %q, want bob", p)
	}

	if _, err := NewRegistry(failingZones{inmem.NewZoneRepository()}).OwnerOf(ctx, id); err == nil {
		t.Error("expected backend error to propagate")
	}
}

func TestStatic_OwnerOf(t *testing.T) {
	var id model.ZoneID
	id[0] = 3
	s := Static{id: "carol"}
	if p, _ := s.OwnerOf(context.Background(), id); p != "carol" {
		t.Errorf("OwnerOf = %q", p)
	}
	if p, _ := s.OwnerOf(context.Background(), model.RootZoneID); p != "" {
		t.Errorf("OwnerOf(root) = %q, want empty", p)
	}
}
