package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mapapylife/internal/adapter/repo/gorm/model"
	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/geo"
	"mapapylife/internal/domain/zone"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ZoneRepo struct {
	db *gorm.DB
}

var _ ports.ZoneRepository = ZoneRepo{}

func NewZoneRepo(db *gorm.DB) ZoneRepo {
	return ZoneRepo{db: db}
}

func (r ZoneRepo) ReplaceAll(ctx context.Context, zones []zone.Zone) error {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	if err := db.Exec(`UPDATE zones SET root_id = NULL WHERE root_id IS NOT NULL`).Error; err != nil {
		return fmt.Errorf("clear roots: %w", err)
	}
	ids := make([]int64, 0, len(zones))
	rows := make([]model.Zone, 0, len(zones))
	for _, z := range zones {
		points, err := json.Marshal(z.Geometry)
		if err != nil {
			return fmt.Errorf("encode zone %d: %w", z.ID, err)
		}
		rows = append(rows, model.Zone{
			ID:          int32(z.ID),
			Name:        z.Name,
			Description: z.Description,
			Points:      string(points),
		})
		ids = append(ids, int64(z.ID))
	}
	if len(rows) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "points", "root_id"}),
		}).CreateInBatches(&rows, 200).Error
		if err != nil {
			return fmt.Errorf("upsert zones: %w", err)
		}
	}
	if err := db.Exec(`DELETE FROM zones WHERE NOT (id = ANY(?))`, pq.Array(ids)).Error; err != nil {
		return fmt.Errorf("delete stale zones: %w", err)
	}
	return nil
}

func (r ZoneRepo) SetRoots(ctx context.Context, zones []zone.Zone) error {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	byRoot := make(map[int][]int64)
	var roots []int
	for _, z := range zones {
		if z.RootID == nil {
			continue
		}
		if _, ok := byRoot[*z.RootID]; !ok {
			roots = append(roots, *z.RootID)
		}
		byRoot[*z.RootID] = append(byRoot[*z.RootID], int64(z.ID))
	}
	for _, root := range roots {
		ids := byRoot[root]
		res := db.Model(&model.Zone{}).Where("id = ANY(?)", pq.Array(ids)).Update("root_id", root)
		if res.Error != nil {
			return fmt.Errorf("set root %d: %w", root, res.Error)
		}
		if res.RowsAffected != int64(len(ids)) {
			return ports.ErrNotFound
		}
	}
	return nil
}

func (r ZoneRepo) ListAll(ctx context.Context) ([]zone.Zone, error) {
	var rows []model.Zone
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toZones(rows)
}

func (r ZoneRepo) GetByID(ctx context.Context, id int) (zone.Zone, error) {
	var m model.Zone
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zone.Zone{}, ports.ErrNotFound
		}
		return zone.Zone{}, err
	}
	return toZone(m)
}

func (r ZoneRepo) ListByIDs(ctx context.Context, ids []int) ([]zone.Zone, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []model.Zone
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where("id = ANY(?)", pq.Array(toInt64s(ids))).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toZones(rows)
}

func toZones(rows []model.Zone) ([]zone.Zone, error) {
	out := make([]zone.Zone, 0, len(rows))
	for _, m := range rows {
		z, err := toZone(m)
		if err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, nil
}

func toZone(m model.Zone) (zone.Zone, error) {
	var g geo.Geometry
	if err := json.Unmarshal([]byte(m.Points), &g); err != nil {
		return zone.Zone{}, fmt.Errorf("decode zone %d points: %w", m.ID, err)
	}
	z := zone.Zone{ID: int(m.ID), Name: m.Name, Description: m.Description, Geometry: g}
	if m.RootID != nil {
		root := int(*m.RootID)
		z.RootID = &root
	}
	return z, nil
}

func toInt64s(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
