package locate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"golang.org/x/sync/singleflight"

	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/geo"
	"mapapylife/internal/domain/zone"
)

// ErrNoIndex is returned when no index was set and there is no repository to load one from.
var ErrNoIndex = errors.New("zone index unavailable")

// Locator serves lookups from a lazily built Index. Invalidate drops the
// index; the next lookup rebuilds it from the repository.
type Locator struct {
	zones   ports.ZoneRepository
	current atomic.Pointer[generation]
	group   singleflight.Group
}

// generation pairs an index with a counter bumped by every Invalidate and
// Set. A load only publishes its index if the generation it started from is
// still current.
type generation struct {
	n   uint64
	idx *Index
}

var _ ports.ZoneLocator = (*Locator)(nil)

func NewLocator(zones ports.ZoneRepository) *Locator {
	l := &Locator{zones: zones}
	l.current.Store(&generation{})
	return l
}

func (l *Locator) Locate(ctx context.Context, p geo.Point) (zone.Zone, error) {
	idx, err := l.Index(ctx)
	if err != nil {
		return zone.Zone{}, err
	}
	return idx.Locate(p)
}

// Resolve returns the zone containing p and its city, both from one index.
func (l *Locator) Resolve(ctx context.Context, p geo.Point) (zone.Zone, zone.Zone, error) {
	idx, err := l.Index(ctx)
	if err != nil {
		return zone.Zone{}, zone.Zone{}, err
	}
	return idx.Resolve(p)
}

func (l *Locator) Zone(ctx context.Context, id int) (zone.Zone, error) {
	idx, err := l.Index(ctx)
	if err != nil {
		return zone.Zone{}, err
	}
	z, ok := idx.Zone(id)
	if !ok {
		return zone.Zone{}, ports.ErrNotFound
	}
	return z, nil
}

// Index returns the current index, loading it if needed. Concurrent callers
// of the same generation share one load, which does not inherit their
// cancellation.
func (l *Locator) Index(ctx context.Context) (*Index, error) {
	gen := l.current.Load()
	if gen.idx != nil {
		return gen.idx, nil
	}
	if l.zones == nil {
		return nil, fmt.Errorf("load zones: %w", ErrNoIndex)
	}
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := l.group.Do(strconv.FormatUint(gen.n, 10), func() (any, error) {
		if cur := l.current.Load(); cur.n == gen.n && cur.idx != nil {
			return cur.idx, nil
		}
		zones, err := l.zones.ListAll(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("load zones: %w", err)
		}
		idx, err := NewIndex(zones)
		if err != nil {
			return nil, err
		}
		if l.current.CompareAndSwap(gen, &generation{n: gen.n, idx: idx}) {
			hlog.CtxInfof(loadCtx, "zone index loaded: zones=%d", idx.Len())
		} else {
			hlog.CtxInfof(loadCtx, "zone index invalidated during load, discarding %d zones", idx.Len())
		}
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}

// Set replaces the index directly, e.g. right after a rebuild in the same process.
func (l *Locator) Set(idx *Index) {
	l.bump(idx)
}

func (l *Locator) Invalidate() {
	l.bump(nil)
}

func (l *Locator) bump(idx *Index) {
	for {
		old := l.current.Load()
		if l.current.CompareAndSwap(old, &generation{n: old.n + 1, idx: idx}) {
			return
		}
	}
}
