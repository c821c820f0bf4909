package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

// RunInTx commits when fn returns nil. A ctx already inside a transaction
// joins it instead of opening a new one.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromCtx(ctx); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
