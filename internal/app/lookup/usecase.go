package lookup

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/geo"
)

var ErrInvalidRequest = errors.New("invalid lookup request")

type UseCase struct {
	Locator ports.ZoneLocator
	Metrics ports.LookupMetrics
	Now     func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if !finite(req.X) || !finite(req.Y) {
		return Response{}, ErrInvalidRequest
	}
	start := u.now()
	p := geo.Point{X: req.X, Y: req.Y}
	if !req.Raw {
		p = geo.FromDisplay(p)
	}

	z, city, err := u.Locator.Resolve(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrNotFound):
			u.record(ports.LookupMiss, start)
		case errors.Is(err, geo.ErrMalformedGeometry):
			u.record(ports.LookupMalformed, start)
			hlog.CtxErrorf(ctx, "lookup aborted at (%v, %v): %v", p.X, p.Y, err)
		}
		return Response{}, err
	}

	resp := Response{ZoneID: z.ID, CityName: &city.Name}
	if z.ID != city.ID {
		resp.ZoneName = &z.Name
	}
	u.record(ports.LookupHit, start)
	return resp, nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) record(outcome ports.LookupOutcome, start time.Time) {
	if u.Metrics == nil {
		return
	}
	u.Metrics.RecordLookup(outcome, u.now().Sub(start))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
