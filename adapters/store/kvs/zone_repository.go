package kvs

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/rueidis"

	"github.com/kompox/dnsresolver/domain"
	"github.com/kompox/dnsresolver/domain/model"
)

type ZoneRepository struct{ db *Database }

func NewZoneRepository(db *Database) *ZoneRepository { return &ZoneRepository{db: db} }

func zoneToFields(z *model.Zone) map[string]string {
	return map[string]string{
		"id":                z.ID.String(),
		"parent":            z.ParentID.String(),
		"label":             z.Label,
		"name":              z.Name,
		"owner":             string(z.Owner),
		"open_registration": strconv.FormatBool(z.OpenRegistration),
		"created_at":        z.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":        z.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func zoneFromFields(m map[string]string) (*model.Zone, error) {
	id, err := model.ParseHash(m["id"])
	if err != nil {
		return nil, fmt.Errorf("zone id: %w", err)
	}
	parent, err := model.ParseHash(m["parent"])
	if err != nil {
		return nil, fmt.Errorf("zone parent: %w", err)
	}
	open, err := strconv.ParseBool(m["open_registration"])
	if err != nil {
		return nil, fmt.Errorf("zone open_registration: %w", err)
	}
	created, err := time.Parse(time.RFC3339Nano, m["created_at"])
	if err != nil {
		return nil, fmt.Errorf("zone created_at: %w", err)
	}
	updated, err := time.Parse(time.RFC3339Nano, m["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("zone updated_at: %w", err)
	}
	return &model.Zone{
		ID:               id,
		ParentID:         parent,
		Label:            m["label"],
		Name:             m["name"],
		Owner:            model.Principal(m["owner"]),
		OpenRegistration: open,
		CreatedAt:        created,
		UpdatedAt:        updated,
	}, nil
}

func (r *ZoneRepository) Put(ctx context.Context, z *model.Zone) error {
	if z == nil {
		return model.ErrZoneInvalid
	}
	c := r.db.Client
	fv := c.B().Hset().Key(r.db.zoneKey(z.ID)).FieldValue()
	for f, v := range zoneToFields(z) {
		fv = fv.FieldValue(f, v)
	}
	for _, resp := range c.DoMulti(ctx,
		fv.Build(),
		c.B().Sadd().Key(r.db.zonesKey()).Member(z.ID.Hex()).Build(),
	) {
		if err := resp.Error(); err != nil {
			return err
		}
	}
	return nil
}

func (r *ZoneRepository) Get(ctx context.Context, id model.ZoneID) (*model.Zone, error) {
	c := r.db.Client
	m, err := c.Do(ctx, c.B().Hgetall().Key(r.db.zoneKey(id)).Build()).AsStrMap()
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, model.ErrZoneNotFound
	}
	return zoneFromFields(m)
}

func (r *ZoneRepository) List(ctx context.Context) ([]*model.Zone, error) {
	c := r.db.Client
	ids, err := c.Do(ctx, c.B().Smembers().Key(r.db.zonesKey()).Build()).AsStrSlice()
	if err != nil {
		return nil, err
	}
	out := make([]*model.Zone, 0, len(ids))
	for _, s := range ids {
		id, err := model.ParseHash(s)
		if err != nil {
			return nil, err
		}
		z, err := r.Get(ctx, id)
		if err == model.ErrZoneNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ZoneRepository) Delete(ctx context.Context, id model.ZoneID) error {
	c := r.db.Client
	resps := c.DoMulti(ctx,
		c.B().Del().Key(r.db.zoneKey(id)).Build(),
		c.B().Srem().Key(r.db.zonesKey()).Member(id.Hex()).Build(),
	)
	n, err := resps[0].AsInt64()
	if err != nil {
		return err
	}
	if err := resps[1].Error(); err != nil && !rueidis.IsRedisNil(err) {
		return err
	}
	if n == 0 {
		return model.ErrZoneNotFound
	}
	return nil
}

var _ domain.ZoneRepository = (*ZoneRepository)(nil)
