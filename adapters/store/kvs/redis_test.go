package kvs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kompox/dnsresolver/domain/model"
)

// openTestDatabase connects to DNSRESOLVER_TEST_REDIS_URL under a per-test key prefix
// and removes the keys it wrote on cleanup.
func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	url := os.Getenv("DNSRESOLVER_TEST_REDIS_URL")
	if url == "" {
		t.Skip("DNSRESOLVER_TEST_REDIS_URL is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := OpenFromURL(ctx, url)
	if err != nil {
		t.Fatalf("OpenFromURL: %v", err)
	}
	db.Prefix = "dnsresolver-test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		ctx := context.Background()
		keys, err := db.Do(ctx, db.B().Keys().Pattern(db.Prefix+"*").Build()).AsStrSlice()
		if err == nil && len(keys) > 0 {
			_ = db.Do(ctx, db.B().Del().Key(keys...).Build()).Error()
		}
		db.Close()
	})
	return db
}

func TestRecordRepository_Redis(t *testing.T) {
	db := openTestDatabase(t)
	ctx := context.Background()
	r := NewRecordRepository(db)
	var zone model.ZoneID
	var name model.NameID
	zone[0], name[0] = 1, 2
	keyA := model.RecordKey{Zone: zone, Name: name, Type: model.TypeA}
	keyTXT := model.RecordKey{Zone: zone, Name: name, Type: model.TypeTXT}

	res, err := r.Apply(ctx, &model.RecordChange{Key: keyA, Data: []byte{1}})
	if err != nil || !res.Created || res.Count != 1 || res.SOAUpdated {
		t.Fatalf("first write: res=%+v err=%v", res, err)
	}
	res, err = r.Apply(ctx, &model.RecordChange{Key: keyA, Data: []byte{2}})
	if err != nil || res.Created || res.Count != 1 {
		t.Fatalf("overwrite: res=%+v err=%v", res, err)
	}
	if got, err := r.Get(ctx, keyA); err != nil || !bytes.Equal(got, []byte{2}) {
		t.Fatalf("Get = %x, %v; want 02", got, err)
	}
	res, err = r.Apply(ctx, &model.RecordChange{Key: keyTXT, SOA: []byte("soa")})
	if err != nil || !res.Created || res.Count != 2 || !res.SOAUpdated {
		t.Fatalf("empty payload write: res=%+v err=%v", res, err)
	}
	if got, err := r.Get(ctx, keyTXT); err != nil || got == nil || len(got) != 0 {
		t.Fatalf("Get empty payload = %x, %v; want present and empty", got, err)
	}
	if got, err := r.SOA(ctx, zone); err != nil || string(got) != "soa" {
		t.Fatalf("SOA = %q, %v", got, err)
	}

	list, err := r.List(ctx, zone, name)
	if err != nil || len(list) != 2 || list[0].Type != model.TypeA || list[1].Type != model.TypeTXT {
		t.Fatalf("List = %+v, %v", list, err)
	}

	res, err = r.Apply(ctx, &model.RecordChange{Key: keyA, Clear: true})
	if err != nil || !res.Removed || res.Count != 1 {
		t.Fatalf("clear: res=%+v err=%v", res, err)
	}
	res, err = r.Apply(ctx, &model.RecordChange{Key: keyA, Clear: true})
	if err != nil || res.Removed || res.Count != 1 {
		t.Fatalf("clear absent: res=%+v err=%v", res, err)
	}
	if got, err := r.Get(ctx, keyA); err != nil || got != nil {
		t.Fatalf("Get cleared = %x, %v; want nil", got, err)
	}
	if _, err := r.Apply(ctx, &model.RecordChange{Key: keyTXT, Clear: true}); err != nil {
		t.Fatalf("clear TXT: %v", err)
	}
	if n, err := r.Count(ctx, zone, name); err != nil || n != 0 {
		t.Fatalf("Count = %d, %v; want 0", n, err)
	}
	if got, err := r.SOA(ctx, zone); err != nil || string(got) != "soa" {
		t.Fatalf("SOA after clears = %q, %v; want it kept", got, err)
	}
	var other model.ZoneID
	if got, err := r.SOA(ctx, other); err != nil || got != nil {
		t.Fatalf("SOA of unset zone = %x, %v; want nil", got, err)
	}
}

func TestZoneRepository_Redis(t *testing.T) {
	db := openTestDatabase(t)
	ctx := context.Background()
	r := NewZoneRepository(db)
	now := time.Now().UTC()
	var id model.ZoneID
	id[0] = 1

	if _, err := r.Get(ctx, id); !errors.Is(err, model.ErrZoneNotFound) {
		t.Fatalf("Get missing: err = %v", err)
	}
	if err := r.Put(ctx, &model.Zone{ID: model.RootZoneID, Owner: "root", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("Put root: %v", err)
	}
	z := &model.Zone{ID: id, Label: "eth", Name: "eth", Owner: "alice", OpenRegistration: true, CreatedAt: now, UpdatedAt: now}
	if err := r.Put(ctx, z); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := r.Get(ctx, id)
	if err != nil || got.Owner != "alice" || !got.OpenRegistration || !got.CreatedAt.Equal(now) {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	list, err := r.List(ctx)
	if err != nil || len(list) != 2 || !list[0].IsRoot() || list[1].Name != "eth" {
		t.Fatalf("List = %+v, %v", list, err)
	}
	if err := r.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := r.Delete(ctx, id); !errors.Is(err, model.ErrZoneNotFound) {
		t.Fatalf("second Delete: err = %v", err)
	}
}
