package rdb

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kompox/dnsresolver/domain"
	"github.com/kompox/dnsresolver/domain/model"
)

type RecordRepository struct{ db *gorm.DB }

func NewRecordRepository(db *gorm.DB) *RecordRepository { return &RecordRepository{db: db} }

func keyWhere(tx *gorm.DB, key model.RecordKey) *gorm.DB {
	return tx.Where("zone_id = ? AND name_id = ? AND type = ?", key.Zone.String(), key.Name.String(), uint16(key.Type))
}

// Apply runs the change in one transaction; the counter row moves only on presence transitions.
func (r *RecordRepository) Apply(ctx context.Context, ch *model.RecordChange) (*model.RecordChangeResult, error) {
	res := &model.RecordChangeResult{}
	zoneID, nameID := ch.Key.Zone.String(), ch.Key.Name.String()
	now := time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := keyWhere(tx.Model(&ResourceRecord{}), ch.Key).Count(&existing).Error; err != nil {
			return err
		}
		present := existing > 0

		switch {
		case ch.Clear && present:
			if err := keyWhere(tx, ch.Key).Delete(&ResourceRecord{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&RecordSetCount{}).
				Where("zone_id = ? AND name_id = ? AND count > 0", zoneID, nameID).
				Update("count", gorm.Expr("count - 1")).Error; err != nil {
				return err
			}
			if err := tx.Where("zone_id = ? AND name_id = ? AND count <= 0", zoneID, nameID).
				Delete(&RecordSetCount{}).Error; err != nil {
				return err
			}
			res.Removed = true
		case !ch.Clear:
			data := ch.Data
			if data == nil {
				data = []byte{}
			}
			rec := &ResourceRecord{ZoneID: zoneID, NameID: nameID, Type: uint16(ch.Key.Type), Data: data, UpdatedAt: now}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "zone_id"}, {Name: "name_id"}, {Name: "type"}},
				DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
			}).Create(rec).Error; err != nil {
				return err
			}
			if !present {
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "zone_id"}, {Name: "name_id"}},
					DoUpdates: clause.Assignments(map[string]any{"count": gorm.Expr("record_set_counts.count + 1")}),
				}).Create(&RecordSetCount{ZoneID: zoneID, NameID: nameID, Count: 1}).Error; err != nil {
					return err
				}
				res.Created = true
			}
		}

		if len(ch.SOA) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "zone_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
			}).Create(&SOARecord{ZoneID: zoneID, Data: ch.SOA, UpdatedAt: now}).Error; err != nil {
				return err
			}
			res.SOAUpdated = true
		}

		count, err := countIn(tx, zoneID, nameID)
		if err != nil {
			return err
		}
		res.Count = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func countIn(tx *gorm.DB, zoneID, nameID string) (int, error) {
	var row RecordSetCount
	err := tx.First(&row, "zone_id = ? AND name_id = ?", zoneID, nameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Count, nil
}

func (r *RecordRepository) Get(ctx context.Context, key model.RecordKey) ([]byte, error) {
	var rec ResourceRecord
	err := keyWhere(r.db.WithContext(ctx), key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

func (r *RecordRepository) List(ctx context.Context, zone model.ZoneID, name model.NameID) ([]*model.Record, error) {
	var recs []ResourceRecord
	if err := r.db.WithContext(ctx).
		Where("zone_id = ? AND name_id = ?", zone.String(), name.String()).
		Order("type ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Record, 0, len(recs))
	for i := range recs {
		out = append(out, &model.Record{Zone: zone, Name: name, Type: model.ResourceType(recs[i].Type), Data: recs[i].Data})
	}
	return out, nil
}

func (r *RecordRepository) Count(ctx context.Context, zone model.ZoneID, name model.NameID) (int, error) {
	return countIn(r.db.WithContext(ctx), zone.String(), name.String())
}

func (r *RecordRepository) SOA(ctx context.Context, zone model.ZoneID) ([]byte, error) {
	var rec SOARecord
	err := r.db.WithContext(ctx).First(&rec, "zone_id = ?", zone.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

var _ domain.RecordRepository = (*RecordRepository)(nil)
