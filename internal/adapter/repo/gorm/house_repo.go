package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"mapapylife/internal/adapter/repo/gorm/model"
	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/world"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HouseRepo struct {
	db *gorm.DB
}

var _ ports.HouseRepository = HouseRepo{}

func NewHouseRepo(db *gorm.DB) HouseRepo {
	return HouseRepo{db: db}
}

func (r HouseRepo) List(ctx context.Context, filter ports.HouseFilter) ([]world.House, error) {
	q := getDBFromCtx(ctx, r.db).WithContext(ctx).Order("id")
	if filter.UpdatedSince != nil {
		q = q.Where("last_update >= ?", *filter.UpdatedSince)
	}
	var rows []model.House
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]world.House, 0, len(rows))
	for _, m := range rows {
		out = append(out, toHouse(m))
	}
	return out, nil
}

func (r HouseRepo) GetByID(ctx context.Context, id int) (world.House, error) {
	var m model.House
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return world.House{}, ports.ErrNotFound
		}
		return world.House{}, err
	}
	return toHouse(m), nil
}

func (r HouseRepo) Upsert(ctx context.Context, houses []world.House) error {
	if len(houses) == 0 {
		return nil
	}
	rows := make([]model.House, 0, len(houses))
	for _, h := range houses {
		rows = append(rows, model.House{
			ID:             int32(h.ID),
			X:              h.X,
			Y:              h.Y,
			Name:           h.Name,
			LocationID:     int32(h.LocationID),
			OwnerID:        int32Ptr(h.OwnerID),
			OrganizationID: int32Ptr(h.OrganizationID),
			Price:          h.Price,
			Expires:        h.Expires,
			LastUpdate:     h.LastUpdate,
		})
	}
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "owner_id", "organization_id", "price", "expires", "last_update"}),
	}).CreateInBatches(&rows, 200).Error
	if err != nil {
		return fmt.Errorf("upsert houses: %w", err)
	}
	return nil
}

func toHouse(m model.House) world.House {
	return world.House{
		ID:             int(m.ID),
		X:              m.X,
		Y:              m.Y,
		Name:           m.Name,
		LocationID:     int(m.LocationID),
		OwnerID:        intPtr(m.OwnerID),
		OrganizationID: intPtr(m.OrganizationID),
		Price:          m.Price,
		Expires:        m.Expires,
		LastUpdate:     m.LastUpdate,
	}
}
