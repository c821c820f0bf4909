package memory

import (
	"context"

	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/zone"
)

type ZoneRepo struct {
	store *Store
}

var _ ports.ZoneRepository = ZoneRepo{}

func NewZoneRepo(store *Store) ZoneRepo {
	return ZoneRepo{store: store}
}

func (r ZoneRepo) ReplaceAll(ctx context.Context, zones []zone.Zone) error {
	defer r.store.lock(ctx)()
	next := make(map[int]zone.Zone, len(zones))
	for _, z := range zones {
		z.RootID = nil
		next[z.ID] = z
	}
	r.store.zones = next
	return nil
}

func (r ZoneRepo) SetRoots(ctx context.Context, zones []zone.Zone) error {
	defer r.store.lock(ctx)()
	for _, z := range zones {
		current, ok := r.store.zones[z.ID]
		if !ok {
			return ports.ErrNotFound
		}
		if z.RootID != nil {
			if _, ok := r.store.zones[*z.RootID]; !ok {
				return ports.ErrConflict
			}
		}
		current.RootID = z.RootID
		r.store.zones[z.ID] = cloneZone(current)
	}
	return nil
}

func (r ZoneRepo) ListAll(ctx context.Context) ([]zone.Zone, error) {
	defer r.store.rlock(ctx)()
	out := make([]zone.Zone, 0, len(r.store.zones))
	for _, z := range r.store.zones {
		out = append(out, cloneZone(z))
	}
	zone.SortByID(out)
	return out, nil
}

func (r ZoneRepo) GetByID(ctx context.Context, id int) (zone.Zone, error) {
	defer r.store.rlock(ctx)()
	z, ok := r.store.zones[id]
	if !ok {
		return zone.Zone{}, ports.ErrNotFound
	}
	return cloneZone(z), nil
}

func (r ZoneRepo) ListByIDs(ctx context.Context, ids []int) ([]zone.Zone, error) {
	defer r.store.rlock(ctx)()
	out := make([]zone.Zone, 0, len(ids))
	for _, id := range ids {
		if z, ok := r.store.zones[id]; ok {
			out = append(out, cloneZone(z))
		}
	}
	zone.SortByID(out)
	return out, nil
}
