package memory

import (
	"context"
	"sort"

	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/world"
)

type HouseRepo struct {
	store *Store
}

var _ ports.HouseRepository = HouseRepo{}

func NewHouseRepo(store *Store) HouseRepo {
	return HouseRepo{store: store}
}

func (r HouseRepo) List(ctx context.Context, filter ports.HouseFilter) ([]world.House, error) {
	defer r.store.rlock(ctx)()
	out := make([]world.House, 0, len(r.store.houses))
	for _, h := range r.store.houses {
		if filter.UpdatedSince != nil && h.LastUpdate.Before(*filter.UpdatedSince) {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r HouseRepo) GetByID(ctx context.Context, id int) (world.House, error) {
	defer r.store.rlock(ctx)()
	h, ok := r.store.houses[id]
	if !ok {
		return world.House{}, ports.ErrNotFound
	}
	return h, nil
}

func (r HouseRepo) Upsert(ctx context.Context, houses []world.House) error {
	defer r.store.lock(ctx)()
	for _, h := range houses {
		if h.OwnerID != nil {
			if _, ok := r.store.players[*h.OwnerID]; !ok {
				return ports.ErrConflict
			}
		}
		if h.OrganizationID != nil {
			if _, ok := r.store.orgs[*h.OrganizationID]; !ok {
				return ports.ErrConflict
			}
		}
		r.store.houses[h.ID] = h
	}
	return nil
}
