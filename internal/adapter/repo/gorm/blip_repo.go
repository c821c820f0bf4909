package gormrepo

import (
	"context"
	"fmt"

	"mapapylife/internal/adapter/repo/gorm/model"
	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/world"

	"gorm.io/gorm"
)

type BlipRepo struct {
	db *gorm.DB
}

var _ ports.BlipRepository = BlipRepo{}

func NewBlipRepo(db *gorm.DB) BlipRepo {
	return BlipRepo{db: db}
}

func (r BlipRepo) ReplaceAll(ctx context.Context, blips []world.Blip) error {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	if err := db.Exec(`TRUNCATE TABLE blips RESTART IDENTITY`).Error; err != nil {
		return fmt.Errorf("truncate blips: %w", err)
	}
	if len(blips) == 0 {
		return nil
	}
	rows := make([]model.Blip, 0, len(blips))
	for _, b := range blips {
		rows = append(rows, model.Blip{X: b.X, Y: b.Y, Name: b.Name, Icon: b.Icon})
	}
	if err := db.CreateInBatches(&rows, 200).Error; err != nil {
		return fmt.Errorf("insert blips: %w", err)
	}
	return nil
}

func (r BlipRepo) List(ctx context.Context) ([]world.Blip, error) {
	var rows []model.Blip
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]world.Blip, 0, len(rows))
	for _, m := range rows {
		out = append(out, world.Blip{ID: int(m.ID), X: m.X, Y: m.Y, Name: m.Name, Icon: m.Icon})
	}
	return out, nil
}
