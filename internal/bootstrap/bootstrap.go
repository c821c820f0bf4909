// Package bootstrap holds the wiring shared by the binaries under cmd/.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"mapapylife/db"
	"mapapylife/internal/adapter/gameapi"
	redisnotify "mapapylife/internal/adapter/notify/redis"
	gormrepo "mapapylife/internal/adapter/repo/gorm"
	"mapapylife/internal/adapter/source/mta"
	staticsource "mapapylife/internal/adapter/source/static"
	"mapapylife/internal/app/gamesync"
	"mapapylife/internal/app/ports"
	"mapapylife/internal/app/rebuild"
	"mapapylife/internal/config"
)

func OpenDB(ctx context.Context, cfg *config.Config, migrate bool) (*gorm.DB, error) {
	gdb, err := gormrepo.OpenPostgres(cfg.Database.DSN, gormrepo.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Logging.GormLevel(),
	})
	if err != nil {
		return nil, err
	}
	if migrate || cfg.Database.AutoMigrate {
		if _, err := gormrepo.ApplyMigrations(ctx, gdb, db.Migrations, db.MigrationsDir); err != nil {
			return nil, err
		}
	}
	return gdb, nil
}

// OpenRedis returns nil when no address is configured.
func OpenRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func StaticSource(cfg config.SourcesConfig) staticsource.Provider {
	return staticsource.Provider{Root: cfg.DataDir, CatalogFile: cfg.CatalogFile, BlipsFile: cfg.BlipsFile}
}

func RebuildUseCase(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client, metrics ports.RebuildMetrics) rebuild.UseCase {
	static := StaticSource(cfg.Sources)
	uc := rebuild.UseCase{
		Source:    &mta.Source{Catalogs: static, URL: cfg.Sources.MTAURL, File: cfg.Sources.MTAFile},
		Zones:     gormrepo.NewZoneRepo(gdb),
		TxManager: gormrepo.NewTxManager(gdb),
		Hierarchy: rebuild.Hierarchy{
			CityNames:  cfg.Hierarchy.CityNames,
			Exceptions: cfg.Hierarchy.Exceptions,
			Threshold:  cfg.Hierarchy.Threshold,
		},
		Workers:    cfg.Sources.Workers,
		BlipSource: static,
		Blips:      gormrepo.NewBlipRepo(gdb),
		Metrics:    metrics,
		Now:        time.Now,
	}
	if rdb != nil {
		uc.Notifier = redisnotify.New(rdb, cfg.Redis.Channel)
	}
	return uc
}

func SyncUseCase(cfg *config.Config, gdb *gorm.DB, locator ports.ZoneLocator) (gamesync.UseCase, error) {
	api, err := gameapi.New(cfg.GameAPI.BaseURL, cfg.GameAPI.AuthToken, cfg.GameAPI.Timeout)
	if err != nil {
		return gamesync.UseCase{}, fmt.Errorf("game api client: %w", err)
	}
	return gamesync.UseCase{
		API:           api,
		Houses:        gormrepo.NewHouseRepo(gdb),
		Players:       gormrepo.NewPlayerRepo(gdb),
		Organizations: gormrepo.NewOrganizationRepo(gdb),
		Locator:       locator,
		Now:           time.Now,
	}, nil
}
