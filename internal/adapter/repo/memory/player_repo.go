package memory

import (
	"context"
	"sort"

	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/world"
)

type PlayerRepo struct {
	store *Store
}

var _ ports.PlayerRepository = PlayerRepo{}

func NewPlayerRepo(store *Store) PlayerRepo {
	return PlayerRepo{store: store}
}

func (r PlayerRepo) List(ctx context.Context) ([]world.Player, error) {
	defer r.store.rlock(ctx)()
	out := make([]world.Player, 0, len(r.store.players))
	for _, p := range r.store.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r PlayerRepo) ListByIDs(ctx context.Context, ids []int) ([]world.Player, error) {
	defer r.store.rlock(ctx)()
	out := make([]world.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.store.players[id]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r PlayerRepo) Upsert(ctx context.Context, players []world.Player) error {
	defer r.store.lock(ctx)()
	for _, p := range players {
		r.store.players[p.ID] = p
	}
	return nil
}

type OrganizationRepo struct {
	store *Store
}

var _ ports.OrganizationRepository = OrganizationRepo{}

func NewOrganizationRepo(store *Store) OrganizationRepo {
	return OrganizationRepo{store: store}
}

func (r OrganizationRepo) List(ctx context.Context) ([]world.Organization, error) {
	defer r.store.rlock(ctx)()
	out := make([]world.Organization, 0, len(r.store.orgs))
	for _, o := range r.store.orgs {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r OrganizationRepo) Upsert(ctx context.Context, orgs []world.Organization) error {
	defer r.store.lock(ctx)()
	for _, o := range orgs {
		r.store.orgs[o.ID] = o
	}
	return nil
}
