package memory

import (
	"context"
	"slices"

	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/world"
)

type BlipRepo struct {
	store *Store
}

var _ ports.BlipRepository = BlipRepo{}

func NewBlipRepo(store *Store) BlipRepo {
	return BlipRepo{store: store}
}

// ReplaceAll stores blips with ids assigned in order starting at 1.
func (r BlipRepo) ReplaceAll(ctx context.Context, blips []world.Blip) error {
	defer r.store.lock(ctx)()
	next := make([]world.Blip, len(blips))
	for i, b := range blips {
		b.ID = i + 1
		next[i] = b
	}
	r.store.blips = next
	return nil
}

func (r BlipRepo) List(ctx context.Context) ([]world.Blip, error) {
	defer r.store.rlock(ctx)()
	return slices.Clone(r.store.blips), nil
}
