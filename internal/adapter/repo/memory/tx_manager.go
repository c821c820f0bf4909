package memory

import (
	"context"
)

type txKey struct{}

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx holds the store lock for the whole of fn and restores the previous
// contents when fn fails.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// lock takes the store lock unless ctx already runs inside RunInTx.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}
