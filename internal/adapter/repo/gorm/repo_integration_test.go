package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"mapapylife/db"
	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/geo"
	"mapapylife/internal/domain/world"
	"mapapylife/internal/domain/zone"

	"gorm.io/gorm"
)

func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("MAPAPYLIFE_DB_DSN")
	if dsn == "" {
		t.Skip("MAPAPYLIFE_DB_DSN is required for integration test")
	}
	gdb, err := OpenPostgres(dsn, PoolConfig{})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if _, err := ApplyMigrations(context.Background(), gdb, db.Migrations, db.MigrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	for _, table := range []string{"houses", "blips", "players", "organizations", "zones"} {
		if err := gdb.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("clean %s: %v", table, err)
		}
	}
	return gdb
}

func square(x1, y1, x2, y2 int) geo.Geometry {
	return geo.Simple(geo.Ring{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2}})
}

func TestZoneRepo_ReplaceAllAndSetRoots(t *testing.T) {
	gdb := requireDB(t)
	ctx := context.Background()
	repo := NewZoneRepo(gdb)
	tx := NewTxManager(gdb)

	zones := []zone.Zone{
		{ID: 1, Name: "Los Santos", Description: "LS", Geometry: square(0, 0, 100, 100)},
		{ID: 2, Name: "Idlewood", Description: "IWD", Geometry: geo.Multi(
			geo.Ring{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 10, Y: 20}},
			geo.Ring{{X: 30, Y: 30}, {X: 40, Y: 30}, {X: 40, Y: 40}, {X: 30, Y: 40}},
		)},
		{ID: 3, Name: "Stale", Description: "ST", Geometry: square(500, 500, 510, 510)},
	}
	root := 1
	zones[1].RootID = &root

	err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := repo.ReplaceAll(txCtx, zones); err != nil {
			return err
		}
		return repo.SetRoots(txCtx, zones)
	})
	if err != nil {
		t.Fatalf("rebuild tx: %v", err)
	}

	got, err := repo.GetByID(ctx, 2)
	if err != nil {
		t.Fatalf("get zone: %v", err)
	}
	if got.RootID == nil || *got.RootID != 1 {
		t.Fatalf("expected root 1, got %v", got.RootID)
	}
	if !got.Geometry.Equal(zones[1].Geometry) {
		t.Fatalf("expected multipolygon round trip, got %+v", got.Geometry)
	}

	if err := repo.ReplaceAll(ctx, zones[:2]); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := repo.GetByID(ctx, 3); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected stale zone to be removed, got %v", err)
	}
	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[1].RootID != nil {
		t.Fatalf("expected two zones with cleared roots, got %+v", all)
	}
	byIDs, err := repo.ListByIDs(ctx, []int{2, 99})
	if err != nil || len(byIDs) != 1 || byIDs[0].Name != "Idlewood" {
		t.Fatalf("unexpected ListByIDs result %+v err=%v", byIDs, err)
	}
}

func TestTxManager_RunInTxRollback(t *testing.T) {
	gdb := requireDB(t)
	ctx := context.Background()
	repo := NewZoneRepo(gdb)
	tx := NewTxManager(gdb)

	if err := repo.ReplaceAll(ctx, []zone.Zone{{ID: 1, Name: "Keep", Geometry: square(0, 0, 1, 1)}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rollbackErr := tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := repo.ReplaceAll(txCtx, []zone.Zone{{ID: 9, Name: "Drop", Geometry: square(0, 0, 1, 1)}}); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	if rollbackErr == nil {
		t.Fatalf("expected rollback error")
	}
	if _, err := repo.GetByID(ctx, 1); err != nil {
		t.Fatalf("expected rollback to keep zone 1, got err=%v", err)
	}
}

func TestHouseAndPlayerRepos_RoundTrip(t *testing.T) {
	gdb := requireDB(t)
	ctx := context.Background()
	if err := NewZoneRepo(gdb).ReplaceAll(ctx, []zone.Zone{{ID: 1, Name: "Los Santos", Geometry: square(0, 0, 100, 100)}}); err != nil {
		t.Fatalf("seed zones: %v", err)
	}
	reg := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	players := NewPlayerRepo(gdb)
	if err := players.Upsert(ctx, []world.Player{{ID: 7, Login: "neo", Registered: reg, LastOnline: reg}}); err != nil {
		t.Fatalf("upsert players: %v", err)
	}
	logo := "https://example.com/logo.png"
	if err := NewOrganizationRepo(gdb).Upsert(ctx, []world.Organization{{ID: 3, Name: "Org", Tag: "ORG", LogoURL: &logo, Registered: reg}}); err != nil {
		t.Fatalf("upsert organizations: %v", err)
	}

	owner, org := 7, 3
	price := 2500.0
	updated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	houses := NewHouseRepo(gdb)
	err := houses.Upsert(ctx, []world.House{{
		ID: 10, X: 50, Y: 50, Name: "Villa", LocationID: 1,
		OwnerID: &owner, OrganizationID: &org, Price: &price, LastUpdate: updated,
	}})
	if err != nil {
		t.Fatalf("upsert houses: %v", err)
	}
	h, err := houses.GetByID(ctx, 10)
	if err != nil {
		t.Fatalf("get house: %v", err)
	}
	if h.OwnerID == nil || *h.OwnerID != 7 || h.Price == nil || *h.Price != 2500 {
		t.Fatalf("unexpected house %+v", h)
	}

	since := updated.Add(time.Hour)
	recent, err := houses.List(ctx, ports.HouseFilter{UpdatedSince: &since})
	if err != nil || len(recent) != 0 {
		t.Fatalf("expected no recent houses, got %+v err=%v", recent, err)
	}
	found, err := players.ListByIDs(ctx, []int{7})
	if err != nil || len(found) != 1 || found[0].Login != "neo" {
		t.Fatalf("unexpected players %+v err=%v", found, err)
	}
}

func TestBlipRepo_ReplaceAll(t *testing.T) {
	gdb := requireDB(t)
	ctx := context.Background()
	repo := NewBlipRepo(gdb)
	if err := repo.ReplaceAll(ctx, []world.Blip{{X: 1, Y: 2, Name: "Bank", Icon: "52"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := repo.ReplaceAll(ctx, []world.Blip{{X: 3, Y: 4, Name: "Gym", Icon: "54"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	blips, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(blips) != 1 || blips[0].ID != 1 || blips[0].Name != "Gym" {
		t.Fatalf("unexpected blips %+v", blips)
	}
}
