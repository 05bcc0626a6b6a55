// Package inventory is the single writer of product stock counts.
// Order creation decrements through it and cancellation approval restores
// through it; nothing else touches the stock column.
package inventory

import (
	"context"
	"database/sql"

	"shopora-be/internal/logger"
	"shopora-be/internal/product"

	"go.uber.org/zap"
)

type Ledger interface {
	// Decrement reduces a product's stock by quantity, floored at zero.
	// A deficit is clamped, not rejected.
	Decrement(ctx context.Context, productID uint, quantity int) error

	// Restore adds quantity back to a product's stock unconditionally.
	Restore(ctx context.Context, productID uint, quantity int) error
}

type ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) Ledger {
	return &ledger{db: db}
}

func (l *ledger) Decrement(ctx context.Context, productID uint, quantity int) error {
	res, err := l.db.ExecContext(ctx, `
		UPDATE products
		SET stock = GREATEST(stock - $1, 0), updated_at = NOW()
		WHERE id = $2
	`, quantity, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return product.ErrNotFound
	}

	logger.FromCtx(ctx).Debug("stock decremented",
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
	)
	return nil
}

func (l *ledger) Restore(ctx context.Context, productID uint, quantity int) error {
	res, err := l.db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2
	`, quantity, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return product.ErrNotFound
	}

	logger.FromCtx(ctx).Debug("stock restored",
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
	)
	return nil
}
