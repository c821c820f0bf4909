package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"mapapylife/internal/app/gamesync"
	"mapapylife/internal/app/locate"
	"mapapylife/internal/app/rebuild"
	"mapapylife/internal/bootstrap"
	"mapapylife/internal/config"
)

// generatedb migrates the schema, rebuilds every zone and, unless told
// otherwise, pulls organizations, players and houses from the game API.
func main() {
	skipBlips := flag.Bool("skip-blips", false, "do not reload blips.txt")
	skipSync := flag.Bool("skip-sync", false, "do not pull data from the game API")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.Logging.ApplyLogLevel()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := bootstrap.OpenDB(ctx, cfg, true)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	rdb := bootstrap.OpenRedis(cfg.Redis)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	resp, err := bootstrap.RebuildUseCase(cfg, gdb, rdb, nil).Execute(ctx, rebuild.Request{SkipBlips: *skipBlips})
	if err != nil {
		log.Fatalf("rebuild zones: %v", err)
	}
	hlog.Infof("rebuilt %d zones (orphans=%d ambiguous=%d), %d blips",
		len(resp.Zones), len(resp.Resolution.Orphans), len(resp.Resolution.Ambiguous), resp.Blips)

	if *skipSync {
		return
	}
	locator := locate.NewLocator(nil)
	locator.Set(resp.Index)
	syncUC, err := bootstrap.SyncUseCase(cfg, gdb, locator)
	if err != nil {
		log.Fatalf("sync: %v", err)
	}
	for _, job := range []gamesync.Job{gamesync.JobOrganizations, gamesync.JobPlayers, gamesync.JobHouses} {
		if _, err := syncUC.Execute(ctx, gamesync.Request{Job: job}); err != nil {
			log.Fatalf("%s: %v", job, err)
		}
	}
}
