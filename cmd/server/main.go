package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	limitmemory "github.com/ulule/limiter/v3/drivers/store/memory"
	limitredis "github.com/ulule/limiter/v3/drivers/store/redis"

	httpadapter "mapapylife/internal/adapter/http"
	"mapapylife/internal/adapter/metrics"
	metricsinmem "mapapylife/internal/adapter/metrics/inmemory"
	prommetrics "mapapylife/internal/adapter/metrics/prom"
	redisnotify "mapapylife/internal/adapter/notify/redis"
	gormrepo "mapapylife/internal/adapter/repo/gorm"
	"mapapylife/internal/app/locate"
	"mapapylife/internal/app/lookup"
	"mapapylife/internal/app/points"
	"mapapylife/internal/bootstrap"
	"mapapylife/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.Logging.ApplyLogLevel()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := bootstrap.OpenDB(ctx, cfg, false)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	zones := gormrepo.NewZoneRepo(gdb)
	houses := gormrepo.NewHouseRepo(gdb)
	players := gormrepo.NewPlayerRepo(gdb)
	locator := locate.NewLocator(zones)

	kpi := metricsinmem.NewRecorder()
	recorder := metrics.Tee{kpi, prommetrics.NewRecorder(prometheus.DefaultRegisterer)}

	rdb := bootstrap.OpenRedis(cfg.Redis)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		go listenForRebuilds(ctx, redisnotify.New(rdb, cfg.Redis.Channel), locator)
	}
	lim, err := newRateLimiter(cfg.RateLimit, rdb)
	if err != nil {
		log.Fatalf("rate limiter: %v", err)
	}

	if _, err := locator.Index(ctx); err != nil {
		hlog.Warnf("zone index not loaded at startup: %v", err)
	}

	h := httpadapter.Handler{
		LookupUC:  lookup.UseCase{Locator: locator, Metrics: recorder},
		ZonesUC:   points.ZonesUseCase{Zones: zones},
		GeoJSONUC: points.GeoJSONUseCase{Zones: zones},
		HousesUC:  points.HousesUseCase{Houses: houses, Zones: zones, Players: players},
		HouseUC:   points.HouseUseCase{Houses: houses, Zones: zones, Players: players},
		BlipsUC:   points.BlipsUseCase{Blips: gormrepo.NewBlipRepo(gdb)},
		KPI:       kpi,
		Metrics:   promhttp.Handler(),
		Limiter:   lim,

		AllowOrigin: cfg.Server.AllowOrigin,
	}

	s := server.Default(
		server.WithHostPorts(cfg.Server.Addr),
		server.WithReadTimeout(cfg.Server.ReadTimeout),
		server.WithWriteTimeout(cfg.Server.WriteTimeout),
		server.WithExitWaitTime(cfg.Server.ExitWaitTimeout),
	)
	h.RegisterRoutes(s)

	hlog.Infof("mapapylife server listening on %s", cfg.Server.Addr)
	s.Spin()
}

// newRateLimiter returns nil when limiting is disabled. Limits are shared
// across instances when a Redis client is given.
func newRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) (*limiter.Limiter, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	rate := limiter.Rate{Period: cfg.Period, Limit: int64(cfg.Limit)}
	if rdb == nil {
		return limiter.New(limitmemory.NewStore(), rate), nil
	}
	store, err := limitredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: "mapapylife:limiter"})
	if err != nil {
		return nil, err
	}
	return limiter.New(store, rate), nil
}

type invalidator interface {
	Invalidate()
}

func listenForRebuilds(ctx context.Context, n *redisnotify.Notifier, target invalidator) {
	err := n.Listen(ctx, func(runID string) {
		hlog.Infof("zones rebuilt by run %s, dropping zone index", runID)
		target.Invalidate()
	})
	if err != nil {
		hlog.Errorf("rebuild listener stopped: %v", err)
	}
}
