package kvs

import (
	"context"
	"fmt"
	"slices"

	"github.com/redis/rueidis"

	"github.com/kompox/dnsresolver/domain"
	"github.com/kompox/dnsresolver/domain/model"
)

type RecordRepository struct{ db *Database }

func NewRecordRepository(db *Database) *RecordRepository { return &RecordRepository{db: db} }

// Apply queues the record write or delete, the SOA write and HLEN in one MULTI/EXEC.
func (r *RecordRepository) Apply(ctx context.Context, ch *model.RecordChange) (*model.RecordChangeResult, error) {
	c := r.db.Client
	key := r.db.recordsKey(ch.Key.Zone, ch.Key.Name)
	field := typeField(ch.Key.Type)

	cmds := []rueidis.Completed{c.B().Multi().Build()}
	if ch.Clear {
		cmds = append(cmds, c.B().Hdel().Key(key).Field(field).Build())
	} else {
		cmds = append(cmds, c.B().Hset().Key(key).FieldValue().FieldValue(field, string(ch.Data)).Build())
	}
	if len(ch.SOA) > 0 {
		cmds = append(cmds, c.B().Set().Key(r.db.soaKey(ch.Key.Zone)).Value(string(ch.SOA)).Build())
	}
	cmds = append(cmds, c.B().Hlen().Key(key).Build(), c.B().Exec().Build())

	var replies []rueidis.RedisMessage
	err := c.Dedicated(func(dc rueidis.DedicatedClient) error {
		resps := dc.DoMulti(ctx, cmds...)
		for _, resp := range resps[:len(resps)-1] {
			if err := resp.Error(); err != nil {
				return err
			}
		}
		var err error
		replies, err = resps[len(resps)-1].ToArray()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("apply record change: %w", err)
	}
	// replies: HSET|HDEL, [SET], HLEN
	if len(replies) < 2 {
		return nil, fmt.Errorf("apply record change: unexpected EXEC reply length %d", len(replies))
	}
	changed, err := replies[0].AsInt64()
	if err != nil {
		return nil, err
	}
	count, err := replies[len(replies)-1].AsInt64()
	if err != nil {
		return nil, err
	}
	return &model.RecordChangeResult{
		Created:    !ch.Clear && changed > 0,
		Removed:    ch.Clear && changed > 0,
		SOAUpdated: len(ch.SOA) > 0,
		Count:      int(count),
	}, nil
}

func (r *RecordRepository) Get(ctx context.Context, key model.RecordKey) ([]byte, error) {
	c := r.db.Client
	b, err := c.Do(ctx, c.B().Hget().Key(r.db.recordsKey(key.Zone, key.Name)).Field(typeField(key.Type)).Build()).AsBytes()
	if rueidis.IsRedisNil(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

func (r *RecordRepository) List(ctx context.Context, zone model.ZoneID, name model.NameID) ([]*model.Record, error) {
	c := r.db.Client
	m, err := c.Do(ctx, c.B().Hgetall().Key(r.db.recordsKey(zone, name)).Build()).AsStrMap()
	if err != nil {
		return nil, err
	}
	out := make([]*model.Record, 0, len(m))
	for f, v := range m {
		typ, err := parseTypeField(f)
		if err != nil {
			return nil, err
		}
		out = append(out, &model.Record{Zone: zone, Name: name, Type: typ, Data: []byte(v)})
	}
	slices.SortFunc(out, func(a, b *model.Record) int { return int(a.Type) - int(b.Type) })
	return out, nil
}

func (r *RecordRepository) Count(ctx context.Context, zone model.ZoneID, name model.NameID) (int, error) {
	c := r.db.Client
	n, err := c.Do(ctx, c.B().Hlen().Key(r.db.recordsKey(zone, name)).Build()).AsInt64()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *RecordRepository) SOA(ctx context.Context, zone model.ZoneID) ([]byte, error) {
	c := r.db.Client
	b, err := c.Do(ctx, c.B().Get().Key(r.db.soaKey(zone)).Build()).AsBytes()
	if rueidis.IsRedisNil(err) {
		return nil, nil
	}
	return b, err
}

var _ domain.RecordRepository = (*RecordRepository)(nil)
