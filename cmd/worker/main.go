package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	gormrepo "mapapylife/internal/adapter/repo/gorm"
	"mapapylife/internal/app/gamesync"
	"mapapylife/internal/app/locate"
	"mapapylife/internal/bootstrap"
	"mapapylife/internal/config"
)

const usage = "usage: worker <update_houses|update_players|update_organizations>"

func main() {
	job, err := parseJob(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

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
	uc, err := bootstrap.SyncUseCase(cfg, gdb, locate.NewLocator(gormrepo.NewZoneRepo(gdb)))
	if err != nil {
		log.Fatalf("sync: %v", err)
	}
	if _, err := uc.Execute(ctx, gamesync.Request{Job: job}); err != nil {
		log.Fatalf("%s: %v", job, err)
	}
}

func parseJob(args []string) (gamesync.Job, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("no job specified\n%s", usage)
	}
	job := gamesync.Job(args[0])
	if !job.Valid() {
		return "", fmt.Errorf("unknown job %q\n%s", args[0], usage)
	}
	return job, nil
}
