package inmem

import (
	"bytes"
	"context"
	"testing"

	"github.com/kompox/dnsresolver/domain/model"
)

func TestRecordRepository_Transitions(t *testing.T) {
	ctx := context.Background()
	r := NewRecordRepository()
	var zone model.ZoneID
	var name model.NameID
	zone[0], name[0] = 1, 2
	key := model.RecordKey{Zone: zone, Name: name, Type: model.TypeA}

	res, err := r.Apply(ctx, &model.RecordChange{Key: key, Data: []byte{0x01}})
	if err != nil || !res.Created || res.Count != 1 {
		t.Fatalf("first write: res=%+v err=%v", res, err)
	}
	res, err = r.Apply(ctx, &model.RecordChange{Key: key, Data: []byte{0x02}})
	if err != nil || res.Created || res.Count != 1 {
		t.Fatalf("overwrite: res=%+v err=%v", res, err)
	}
	if got, _ := r.Get(ctx, key); !bytes.Equal(got, []byte{0x02}) {
		t.Errorf("Get after overwrite = %x", got)
	}

	empty := model.RecordKey{Zone: zone, Name: name, Type: model.TypeTXT}
	if res, _ := r.Apply(ctx, &model.RecordChange{Key: empty}); !res.Created || res.Count != 2 {
		t.Errorf("empty payload should still create a record: %+v", res)
	}
	list, _ := r.List(ctx, zone, name)
	if len(list) != 2 || list[0].Type != model.TypeA || list[1].Type != model.TypeTXT {
		t.Errorf("List = %+v", list)
	}

	for _, k := range []model.RecordKey{key, empty} {
		if res, _ := r.Apply(ctx, &model.RecordChange{Key: k, Clear: true}); !res.Removed {
			t.Errorf("clear %s: %+v", k.Type, res)
		}
	}
	if res, _ := r.Apply(ctx, &model.RecordChange{Key: key, Clear: true}); res.Removed || res.Count != 0 {
		t.Errorf("clearing an absent key must be a no-op: %+v", res)
	}
	if n, _ := r.Count(ctx, zone, name); n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
	if got, _ := r.Get(ctx, key); got != nil {
		t.Errorf("Get after clear = %x, want nil", got)
	}
}

func TestRecordRepository_SOA(t *testing.T) {
	ctx := context.Background()
	r := NewRecordRepository()
	var zone model.ZoneID
	zone[0] = 9
	key := model.RecordKey{Zone: zone, Type: model.TypeA}

	if _, err := r.Apply(ctx, &model.RecordChange{Key: key, Data: []byte{0x11}, SOA: []byte{0xff}}); err != nil {
		t.Fatal(err)
	}
	if got, _ := r.SOA(ctx, zone); !bytes.Equal(got, []byte{0xff}) {
		t.Errorf("SOA = %x", got)
	}
	res, _ := r.Apply(ctx, &model.RecordChange{Key: key, Clear: true, SOA: []byte{0xee}})
	if !res.SOAUpdated || !res.Removed {
		t.Errorf("clear with soa: %+v", res)
	}
	if got, _ := r.SOA(ctx, zone); !bytes.Equal(got, []byte{0xee}) {
		t.Errorf("SOA after clear = %x", got)
	}
	var other model.ZoneID
	if got, _ := r.SOA(ctx, other); got != nil {
		t.Errorf("SOA of another zone = %x, want nil", got)
	}
}
