package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type Repository interface {
	CreateOrder(ctx context.Context, o *Order, items []ResolvedLine) error
	GetOrderDetail(ctx context.Context, orderID uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context, status *Status) ([]*Order, error)
	ListPendingCancellations(ctx context.Context) ([]*Order, error)
	ListPendingDeliveries(ctx context.Context) ([]*Order, error)

	// Transition writes update only the fields the transition owns and
	// compare-and-set on the expected source status; zero rows affected
	// means the order moved underneath us.
	SetStatus(ctx context.Context, orderID uint, from, to Status) error
	MarkCancelRequested(ctx context.Context, orderID uint, from Status, reason string) error
	ApproveCancellation(ctx context.Context, orderID uint) error
	RejectCancellation(ctx context.Context, orderID uint) error
	MarkDeliveryConfirmed(ctx context.Context, orderID uint, notes string) error
	MarkDelivered(ctx context.Context, orderID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, total_amount, status, payment_status, payment_method,
	cancellation_reason, cancellation_requested_at, cancellation_approved, cancellation_rejected,
	delivered_at, delivery_confirmed_at, delivery_notes,
	shipping_street, shipping_city, shipping_state, shipping_zip_code,
	created_at, updated_at`

func scanOrder(s interface {
	Scan(dest ...interface{}) error
}) (*Order, error) {
	var o Order
	err := s.Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.CancellationReason, &o.CancellationRequestedAt, &o.CancellationApproved, &o.CancellationRejected,
		&o.DeliveredAt, &o.DeliveryConfirmedAt, &o.DeliveryNotes,
		&o.ShippingStreet, &o.ShippingCity, &o.ShippingState, &o.ShippingZipCode,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) CreateOrder(ctx context.Context, o *Order, items []ResolvedLine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, total_amount, status, payment_status, payment_method,
			shipping_street, shipping_city, shipping_state, shipping_zip_code
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`,
		o.UserID, o.TotalAmount, o.Status, o.PaymentStatus, o.PaymentMethod,
		o.ShippingStreet, o.ShippingCity, o.ShippingState, o.ShippingZipCode,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
		`, o.ID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)

	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}

	itemsByOrder, err := r.fetchItems(ctx, []uint{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = itemsByOrder[o.ID]

	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
}

func (r *repository) ListAll(ctx context.Context, status *Status) ([]*Order, error) {
	if status != nil {
		return r.list(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at DESC`,
			*status)
	}
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *repository) ListPendingCancellations(ctx context.Context) ([]*Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE status = $1 ORDER BY cancellation_requested_at DESC`,
		StatusCancelRequested)
}

func (r *repository) ListPendingDeliveries(ctx context.Context) ([]*Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE status = $1 ORDER BY delivery_confirmed_at DESC`,
		StatusDeliveryConfirmed)
}

func (r *repository) list(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	var ids []uint
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.fetchItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = itemsByOrder[o.ID]
	}

	return orders, nil
}

func (r *repository) fetchItems(ctx context.Context, orderIDs []uint) (map[uint][]OrderItem, error) {
	ids := make([]int64, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, int64(id))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price
		FROM order_items oi
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uint][]OrderItem)
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}

	return result, rows.Err()
}

func (r *repository) SetStatus(ctx context.Context, orderID uint, from, to Status) error {
	return r.transition(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, to, orderID, from)
}

func (r *repository) MarkCancelRequested(ctx context.Context, orderID uint, from Status, reason string) error {
	return r.transition(ctx, `
		UPDATE orders
		SET status = $1, cancellation_reason = $2, cancellation_requested_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = $4
	`, StatusCancelRequested, reason, orderID, from)
}

func (r *repository) ApproveCancellation(ctx context.Context, orderID uint) error {
	return r.transition(ctx, `
		UPDATE orders
		SET status = $1, cancellation_approved = TRUE, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, StatusCancelled, orderID, StatusCancelRequested)
}

func (r *repository) RejectCancellation(ctx context.Context, orderID uint) error {
	return r.transition(ctx, `
		UPDATE orders
		SET status = $1, cancellation_rejected = TRUE, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, StatusProcessing, orderID, StatusCancelRequested)
}

func (r *repository) MarkDeliveryConfirmed(ctx context.Context, orderID uint, notes string) error {
	return r.transition(ctx, `
		UPDATE orders
		SET status = $1, delivery_notes = $2, delivery_confirmed_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = $4
	`, StatusDeliveryConfirmed, notes, orderID, StatusShipped)
}

func (r *repository) MarkDelivered(ctx context.Context, orderID uint) error {
	return r.transition(ctx, `
		UPDATE orders
		SET status = $1, delivered_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, StatusDelivered, orderID, StatusDeliveryConfirmed)
}

func (r *repository) transition(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// The guard held when the service checked it, so the row either
		// vanished or its status changed concurrently.
		return fmt.Errorf("%w: order changed concurrently", ErrInvalidTransition)
	}

	return nil
}
