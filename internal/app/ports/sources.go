package ports

import (
	"context"
	"time"

	"mapapylife/internal/domain/geo"
	"mapapylife/internal/domain/world"
	"mapapylife/internal/domain/zone"
)

type ZoneSource interface {
	Catalog(ctx context.Context) ([]zone.Entry, error)
	Fragments(ctx context.Context) ([]zone.Fragment, error)
}

type BlipSource interface {
	Blips(ctx context.Context) ([]world.Blip, error)
}

// APIHouse is a house as listed by the game API; Position is in internal coordinates.
type APIHouse struct {
	ID             int
	Title          string
	Position       geo.Point
	OwnerID        *int
	OrganizationID *int
	Price          *float64
	Expires        *time.Time
}

type GameAPI interface {
	Houses(ctx context.Context) ([]APIHouse, error)
	Players(ctx context.Context) ([]world.Player, error)
	Player(ctx context.Context, id int) (world.Player, error)
	Organizations(ctx context.Context) ([]world.Organization, error)
	Organization(ctx context.Context, id int) (world.Organization, error)
}

// ZoneLocator resolves the deepest zone containing an internal point.
type ZoneLocator interface {
	Locate(ctx context.Context, p geo.Point) (zone.Zone, error)
	// Resolve returns the containing zone and its city from the same snapshot.
	Resolve(ctx context.Context, p geo.Point) (zone.Zone, zone.Zone, error)
	Zone(ctx context.Context, id int) (zone.Zone, error)
}

type RebuildNotifier interface {
	PublishRebuilt(ctx context.Context, runID string) error
}
