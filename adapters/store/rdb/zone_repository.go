package rdb

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kompox/dnsresolver/domain"
	"github.com/kompox/dnsresolver/domain/model"
)

type ZoneRepository struct{ db *gorm.DB }

func NewZoneRepository(db *gorm.DB) *ZoneRepository { return &ZoneRepository{db: db} }

func zoneToRecord(z *model.Zone) *ZoneRecord {
	return &ZoneRecord{
		ID:               z.ID.String(),
		ParentID:         z.ParentID.String(),
		Label:            z.Label,
		Name:             z.Name,
		Owner:            string(z.Owner),
		OpenRegistration: z.OpenRegistration,
		CreatedAt:        z.CreatedAt,
		UpdatedAt:        z.UpdatedAt,
	}
}

func zoneToModel(r *ZoneRecord) (*model.Zone, error) {
	id, err := model.ParseHash(r.ID)
	if err != nil {
		return nil, err
	}
	parent, err := model.ParseHash(r.ParentID)
	if err != nil {
		return nil, err
	}
	return &model.Zone{
		ID:               id,
		ParentID:         parent,
		Label:            r.Label,
		Name:             r.Name,
		Owner:            model.Principal(r.Owner),
		OpenRegistration: r.OpenRegistration,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}, nil
}

func (r *ZoneRepository) Put(ctx context.Context, z *model.Zone) error {
	if z == nil {
		return model.ErrZoneInvalid
	}
	rec := zoneToRecord(z)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner", "open_registration", "updated_at"}),
	}).Create(rec).Error
}

func (r *ZoneRepository) Get(ctx context.Context, id model.ZoneID) (*model.Zone, error) {
	var rec ZoneRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrZoneNotFound
		}
		return nil, err
	}
	return zoneToModel(&rec)
}

func (r *ZoneRepository) List(ctx context.Context) ([]*model.Zone, error) {
	var recs []ZoneRecord
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Zone, 0, len(recs))
	for i := range recs {
		z, err := zoneToModel(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, nil
}

func (r *ZoneRepository) Delete(ctx context.Context, id model.ZoneID) error {
	res := r.db.WithContext(ctx).Delete(&ZoneRecord{}, "id = ?", id.String())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrZoneNotFound
	}
	return nil
}

var _ domain.ZoneRepository = (*ZoneRepository)(nil)
