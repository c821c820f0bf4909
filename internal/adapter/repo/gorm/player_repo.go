package gormrepo

import (
	"context"
	"fmt"

	"mapapylife/internal/adapter/repo/gorm/model"
	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/world"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlayerRepo struct {
	db *gorm.DB
}

var _ ports.PlayerRepository = PlayerRepo{}

func NewPlayerRepo(db *gorm.DB) PlayerRepo {
	return PlayerRepo{db: db}
}

func (r PlayerRepo) List(ctx context.Context) ([]world.Player, error) {
	var rows []model.Player
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toPlayers(rows), nil
}

func (r PlayerRepo) ListByIDs(ctx context.Context, ids []int) ([]world.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []model.Player
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where("id = ANY(?)", pq.Array(toInt64s(ids))).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toPlayers(rows), nil
}

func (r PlayerRepo) Upsert(ctx context.Context, players []world.Player) error {
	if len(players) == 0 {
		return nil
	}
	rows := make([]model.Player, 0, len(players))
	for _, p := range players {
		rows = append(rows, model.Player{
			ID:         int32(p.ID),
			Login:      p.Login,
			Premium:    p.Premium,
			Registered: p.Registered,
			LastOnline: p.LastOnline,
		})
	}
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"login", "premium", "registered", "last_online"}),
	}).CreateInBatches(&rows, 200).Error
	if err != nil {
		return fmt.Errorf("upsert players: %w", err)
	}
	return nil
}

func toPlayers(rows []model.Player) []world.Player {
	out := make([]world.Player, 0, len(rows))
	for _, m := range rows {
		out = append(out, world.Player{
			ID:         int(m.ID),
			Login:      m.Login,
			Premium:    m.Premium,
			Registered: m.Registered,
			LastOnline: m.LastOnline,
		})
	}
	return out
}

type OrganizationRepo struct {
	db *gorm.DB
}

var _ ports.OrganizationRepository = OrganizationRepo{}

func NewOrganizationRepo(db *gorm.DB) OrganizationRepo {
	return OrganizationRepo{db: db}
}

func (r OrganizationRepo) List(ctx context.Context) ([]world.Organization, error) {
	var rows []model.Organization
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]world.Organization, 0, len(rows))
	for _, m := range rows {
		out = append(out, world.Organization{
			ID:         int(m.ID),
			Name:       m.Name,
			Tag:        m.Tag,
			LogoURL:    m.LogoURL,
			Registered: m.Registered,
		})
	}
	return out, nil
}

func (r OrganizationRepo) Upsert(ctx context.Context, orgs []world.Organization) error {
	if len(orgs) == 0 {
		return nil
	}
	rows := make([]model.Organization, 0, len(orgs))
	for _, o := range orgs {
		rows = append(rows, model.Organization{
			ID:         int32(o.ID),
			Name:       o.Name,
			Tag:        o.Tag,
			LogoURL:    o.LogoURL,
			Registered: o.Registered,
		})
	}
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "tag", "logo_url", "registered"}),
	}).CreateInBatches(&rows, 200).Error
	if err != nil {
		return fmt.Errorf("upsert organizations: %w", err)
	}
	return nil
}
