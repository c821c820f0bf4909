package ports

import (
	"context"
	"time"

	"mapapylife/internal/domain/world"
	"mapapylife/internal/domain/zone"
)

type ZoneRepository interface {
	// ReplaceAll stores zones with no roots and removes zones not in the set.
	ReplaceAll(ctx context.Context, zones []zone.Zone) error
	// SetRoots writes the RootID of every given zone.
	SetRoots(ctx context.Context, zones []zone.Zone) error
	ListAll(ctx context.Context) ([]zone.Zone, error)
	GetByID(ctx context.Context, id int) (zone.Zone, error)
	ListByIDs(ctx context.Context, ids []int) ([]zone.Zone, error)
}

type HouseFilter struct {
	UpdatedSince *time.Time
}

type HouseRepository interface {
	List(ctx context.Context, filter HouseFilter) ([]world.House, error)
	GetByID(ctx context.Context, id int) (world.House, error)
	Upsert(ctx context.Context, houses []world.House) error
}

type BlipRepository interface {
	ReplaceAll(ctx context.Context, blips []world.Blip) error
	List(ctx context.Context) ([]world.Blip, error)
}

type PlayerRepository interface {
	List(ctx context.Context) ([]world.Player, error)
	ListByIDs(ctx context.Context, ids []int) ([]world.Player, error)
	Upsert(ctx context.Context, players []world.Player) error
}

type OrganizationRepository interface {
	List(ctx context.Context) ([]world.Organization, error)
	Upsert(ctx context.Context, orgs []world.Organization) error
}
