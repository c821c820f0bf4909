package rebuild

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"

	"mapapylife/internal/app/locate"
	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/world"
	"mapapylife/internal/domain/zone"
)

var ErrInvalidConfig = errors.New("invalid rebuild config")

// UseCase rebuilds every zone from the source and replaces the stored set in
// one transaction. Nothing is written when any step before the commit fails.
type UseCase struct {
	Source    ports.ZoneSource
	Zones     ports.ZoneRepository
	TxManager ports.TxManager
	Hierarchy Hierarchy
	Workers   int

	BlipSource ports.BlipSource
	Blips      ports.BlipRepository
	Notifier   ports.RebuildNotifier
	Metrics    ports.RebuildMetrics
	Now        func() time.Time
	NewRunID   func() string
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if u.Source == nil || u.Zones == nil || u.TxManager == nil {
		return Response{}, ErrInvalidConfig
	}
	start := u.now()
	resp := Response{RunID: u.runID()}
	hlog.CtxInfof(ctx, "rebuild %s started", resp.RunID)

	catalog, err := u.Source.Catalog(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load catalog: %w", err)
	}
	fragments, err := u.Source.Fragments(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load fragments: %w", err)
	}
	hlog.CtxInfof(ctx, "rebuild %s: catalog=%d fragments=%d", resp.RunID, len(catalog), len(fragments))

	geoms, err := zone.BuildParallel(ctx, fragments, catalog, u.Workers)
	if err != nil {
		return Response{}, err
	}
	zones, err := zone.Assemble(catalog, geoms)
	if err != nil {
		return Response{}, err
	}

	h := zone.Hierarchy{
		CityIDs:    zone.CityIDs(zones, u.Hierarchy.CityNames),
		Exceptions: u.Hierarchy.Exceptions,
		Threshold:  u.Hierarchy.Threshold,
	}
	if len(h.CityIDs) != len(u.Hierarchy.CityNames) {
		hlog.CtxWarnf(ctx, "rebuild %s: %d of %d city names found in catalog", resp.RunID, len(h.CityIDs), len(u.Hierarchy.CityNames))
	}
	res, err := zone.AssignRoots(zones, h)
	if err != nil {
		return Response{}, err
	}
	for _, a := range res.Ambiguous {
		hlog.CtxWarnf(ctx, "rebuild %s: zone %d overlaps cities %v, chose %d", resp.RunID, a.ZoneID, a.Candidates, a.Chosen)
	}
	for _, id := range res.Orphans {
		hlog.CtxInfof(ctx, "rebuild %s: zone %d has no city", resp.RunID, id)
	}

	idx, err := locate.NewIndex(zones)
	if err != nil {
		return Response{}, err
	}

	var blips []world.Blip
	if !req.SkipBlips && u.BlipSource != nil && u.Blips != nil {
		blips, err = u.BlipSource.Blips(ctx)
		if err != nil {
			return Response{}, fmt.Errorf("load blips: %w", err)
		}
	}

	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Zones.ReplaceAll(txCtx, zones); err != nil {
			return fmt.Errorf("replace zones: %w", err)
		}
		if err := u.Zones.SetRoots(txCtx, zones); err != nil {
			return fmt.Errorf("set roots: %w", err)
		}
		if blips != nil {
			if err := u.Blips.ReplaceAll(txCtx, blips); err != nil {
				return fmt.Errorf("replace blips: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}

	if u.Notifier != nil {
		if err := u.Notifier.PublishRebuilt(ctx, resp.RunID); err != nil {
			hlog.CtxWarnf(ctx, "rebuild %s: notify failed: %v", resp.RunID, err)
		}
	}

	elapsed := u.now().Sub(start)
	if u.Metrics != nil {
		u.Metrics.RecordRebuild(ports.RebuildStats{
			Zones:      len(zones),
			Orphans:    len(res.Orphans),
			Ambiguous:  len(res.Ambiguous),
			Exceptions: len(res.Exceptions),
			Elapsed:    elapsed,
		})
	}
	hlog.CtxInfof(ctx, "rebuild %s done: zones=%d orphans=%d ambiguous=%d blips=%d elapsed=%s",
		resp.RunID, len(zones), len(res.Orphans), len(res.Ambiguous), len(blips), elapsed)

	resp.Zones = zones
	resp.Resolution = res
	resp.Blips = len(blips)
	resp.Index = idx
	return resp, nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) runID() string {
	if u.NewRunID != nil {
		return u.NewRunID()
	}
	return uuid.NewString()
}
