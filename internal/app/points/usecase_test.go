package points

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mapapylife/internal/adapter/repo/memory"
	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/geo"
	"mapapylife/internal/domain/world"
	"mapapylife/internal/domain/zone"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	root := 1
	store.SeedZones(
		zone.Zone{ID: 1, Name: "Los Santos", Description: "LS", Geometry: geo.Simple(geo.Ring{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}})},
		zone.Zone{ID: 2, Name: "Idlewood", Description: "IWD", RootID: &root, Geometry: geo.Simple(geo.Ring{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 10, Y: 20}})},
	)
	store.SeedPlayers(world.Player{ID: 5, Login: "neo"})
	owner := 5
	store.SeedHouses(
		world.House{ID: 1, X: 15, Y: 15, Name: "Villa", LocationID: 2, OwnerID: &owner, LastUpdate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		world.House{ID: 2, X: -10, Y: 40, Name: "Shack", LocationID: 1, LastUpdate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	)
	return store
}

func TestZonesUseCase_DisplayTransform(t *testing.T) {
	uc := ZonesUseCase{Zones: memory.NewZoneRepo(seededStore(t))}
	resp, err := uc.Execute(context.Background(), ZonesRequest{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(resp.Data))
	}
	first := resp.Data[0].Points.Rings()[0][0]
	if first != (geo.Vertex{X: 3000, Y: 3000}) {
		t.Fatalf("expected display origin, got %v", first)
	}

	raw, err := uc.Execute(context.Background(), ZonesRequest{Raw: true})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if raw.Data[1].Points.Rings()[0][0] != (geo.Vertex{X: 10, Y: 10}) {
		t.Fatalf("expected raw vertex, got %v", raw.Data[1].Points.Rings()[0][0])
	}
}

func TestGeoJSONUseCase(t *testing.T) {
	uc := GeoJSONUseCase{Zones: memory.NewZoneRepo(seededStore(t))}
	resp, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(resp.Collection.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(resp.Collection.Features))
	}
	f := resp.Collection.Features[1]
	if f.Properties["name"] != "Idlewood" || f.Properties["root_id"] != 1 {
		t.Fatalf("unexpected properties %v", f.Properties)
	}
	if _, err := json.Marshal(resp.Collection); err != nil {
		t.Fatalf("marshal geojson: %v", err)
	}
}

func TestHousesUseCase_ResolvesNamesAndLastUpdate(t *testing.T) {
	store := seededStore(t)
	uc := HousesUseCase{Houses: memory.NewHouseRepo(store), Zones: memory.NewZoneRepo(store), Players: memory.NewPlayerRepo(store)}
	resp, err := uc.Execute(context.Background(), HousesRequest{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 houses, got %d", len(resp.Data))
	}
	villa := resp.Data[0]
	if villa.Location != "Idlewood" || villa.Owner == nil || *villa.Owner != "neo" {
		t.Fatalf("unexpected villa %+v", villa)
	}
	if villa.X != 3015 || villa.Y != 2985 {
		t.Fatalf("expected display coordinates, got (%v, %v)", villa.X, villa.Y)
	}
	if resp.Data[1].Owner != nil {
		t.Fatalf("expected shack to have no owner")
	}
	if resp.LastUpdate == nil || !resp.LastUpdate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected last update %v", resp.LastUpdate)
	}
}

func TestHousesUseCase_FiltersByLastUpdate(t *testing.T) {
	store := seededStore(t)
	uc := HousesUseCase{Houses: memory.NewHouseRepo(store), Zones: memory.NewZoneRepo(store), Players: memory.NewPlayerRepo(store)}
	since := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), HousesRequest{Raw: true, UpdatedSince: &since})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != 1 || resp.Data[0].X != 15 {
		t.Fatalf("unexpected houses %+v", resp.Data)
	}

	empty, err := uc.Execute(context.Background(), HousesRequest{UpdatedSince: ptrTime(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(empty.Data) != 0 || empty.LastUpdate != nil {
		t.Fatalf("expected empty listing without last update, got %+v", empty)
	}
}

func TestHouseUseCase(t *testing.T) {
	store := seededStore(t)
	uc := HouseUseCase{Houses: memory.NewHouseRepo(store), Zones: memory.NewZoneRepo(store), Players: memory.NewPlayerRepo(store)}
	v, err := uc.Execute(context.Background(), HouseRequest{ID: 2})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if v.Title != "Shack" || v.Location != "Los Santos" || v.X != 2990 || v.Y != 2960 {
		t.Fatalf("unexpected house %+v", v)
	}
	if _, err := uc.Execute(context.Background(), HouseRequest{ID: 99}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), HouseRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestBlipsUseCase(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewBlipRepo(store)
	if err := repo.ReplaceAll(context.Background(), []world.Blip{{X: 100, Y: -200, Name: "Bank", Icon: "52"}}); err != nil {
		t.Fatalf("seed blips: %v", err)
	}
	resp, err := BlipsUseCase{Blips: repo}.Execute(context.Background(), BlipsRequest{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].X != 3100 || resp.Data[0].Y != 3200 {
		t.Fatalf("unexpected blips %+v", resp.Data)
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
