package zone

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"mapapylife/internal/domain/geo"
)

type group struct {
	name  string
	rects []geo.Rect
}

// groupFragments buckets fragments by zone name keeping first-appearance order.
func groupFragments(fragments []Fragment) []group {
	pos := make(map[string]int)
	groups := make([]group, 0)
	for _, f := range fragments {
		i, ok := pos[f.Zone]
		if !ok {
			i = len(groups)
			pos[f.Zone] = i
			groups = append(groups, group{name: f.Zone})
		}
		groups[i].rects = append(groups[i].rects, f.Rect)
	}
	return groups
}

func checkDeclared(groups []group, catalog []Entry) error {
	live := make(map[string]bool, len(groups))
	for _, gr := range groups {
		for _, r := range gr.rects {
			if !r.Empty() {
				live[gr.name] = true
				break
			}
		}
	}
	for _, e := range catalog {
		if !live[e.Name] {
			return &MissingGeometryError{Zone: e.Name}
		}
	}
	return nil
}

func buildGroup(gr group) (geo.Geometry, bool, error) {
	rings, err := Union(gr.rects)
	if err != nil {
		return geo.Geometry{}, false, fmt.Errorf("union %q: %w", gr.name, err)
	}
	switch len(rings) {
	case 0:
		return geo.Geometry{}, false, nil
	case 1:
		return geo.Simple(rings[0]), true, nil
	default:
		return geo.Multi(rings...), true, nil
	}
}

// Build unions the fragments of every zone name. Every catalog entry must end
// up with a non-empty geometry; fragments of names outside the catalog are
// built as well.
func Build(fragments []Fragment, catalog []Entry) (map[string]geo.Geometry, error) {
	groups := groupFragments(fragments)
	if err := checkDeclared(groups, catalog); err != nil {
		return nil, err
	}
	out := make(map[string]geo.Geometry, len(groups))
	for _, gr := range groups {
		g, ok, err := buildGroup(gr)
		if err != nil {
			return nil, err
		}
		if ok {
			out[gr.name] = g
		}
	}
	return out, nil
}

// BuildParallel is Build with zone names unioned on up to workers goroutines.
func BuildParallel(ctx context.Context, fragments []Fragment, catalog []Entry, workers int) (map[string]geo.Geometry, error) {
	groups := groupFragments(fragments)
	if err := checkDeclared(groups, catalog); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 1
	}

	var mu sync.Mutex
	out := make(map[string]geo.Geometry, len(groups))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, gr := range groups {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g, ok, err := buildGroup(gr)
			if err != nil || !ok {
				return err
			}
			mu.Lock()
			out[gr.name] = g
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
