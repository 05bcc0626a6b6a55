package cart

import (
	"context"
	"database/sql"
)

type Repository interface {
	GetOrCreate(ctx context.Context, userID uint) (*Cart, error)
	GetByUser(ctx context.Context, userID uint) (*Cart, error)
	GetItemByProduct(ctx context.Context, cartID, productID uint) (*CartItem, error)
	GetItemForUser(ctx context.Context, userID, itemID uint) (*CartItem, error)
	CreateItem(ctx context.Context, cartID, productID uint, quantity int) error
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error
	DeleteItem(ctx context.Context, itemID uint) error
	ClearItems(ctx context.Context, cartID uint) error
	GetCartRows(ctx context.Context, cartID uint) ([]CartRow, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrCreate(ctx context.Context, userID uint) (*Cart, error) {
	c, err := r.GetByUser(ctx, userID)
	if err == nil {
		return c, nil
	}
	if err != ErrCartNotFound {
		return nil, err
	}

	// Lazy creation on first access. The unique index on user_id makes a
	// concurrent double-create resolve to the existing row.
	var created Cart
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, user_id, created_at, updated_at
	`, userID).Scan(&created.ID, &created.UserID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByUser(ctx context.Context, userID uint) (*Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetItemByProduct(ctx context.Context, cartID, productID uint) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, cart_id, quantity
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID).Scan(&item.ID, &item.CartID, &item.Quantity)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) GetItemForUser(ctx context.Context, userID, itemID uint) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		SELECT ci.id, ci.cart_id, ci.quantity,
		       p.id, p.name, p.price, p.stock
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		JOIN products p ON p.id = ci.product_id
		WHERE ci.id = $1 AND c.user_id = $2
	`, itemID, userID).Scan(
		&item.ID, &item.CartID, &item.Quantity,
		&item.Product.ID, &item.Product.Name, &item.Product.Price, &item.Product.Stock,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, cartID, productID uint, quantity int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
	`, cartID, productID, quantity)
	return err
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
	`, quantity, itemID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) DeleteItem(ctx context.Context, itemID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE id = $1
	`, itemID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) ClearItems(ctx context.Context, cartID uint) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1
	`, cartID)
	return err
}

func (r *repository) GetCartRows(ctx context.Context, cartID uint) ([]CartRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.id, ci.cart_id, ci.quantity,
		       p.id, p.name, p.description, p.price, p.category,
		       p.manufacturer, p.stock, p.image_url, p.rating, p.is_active
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CartRow
	for rows.Next() {
		var cr CartRow
		err := rows.Scan(
			&cr.ItemID, &cr.CartID, &cr.Quantity,
			&cr.Product.ID, &cr.Product.Name, &cr.Product.Description,
			&cr.Product.Price, &cr.Product.Category, &cr.Product.Manufacturer,
			&cr.Product.Stock, &cr.Product.ImageURL, &cr.Product.Rating,
			&cr.Product.IsActive,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, cr)
	}

	return result, rows.Err()
}
