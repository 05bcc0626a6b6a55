package cart

import (
	"context"

	"shopora-be/internal/logger"
	"shopora-be/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for carts. Every operation takes the
// owning user explicitly and returns the resulting cart projection.
type Service interface {
	GetCart(ctx context.Context, userID uint) (*Cart, error)
	AddItem(ctx context.Context, userID, productID uint, quantity int) (*Cart, error)
	UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, userID, itemID uint) (*Cart, error)
	Clear(ctx context.Context, userID uint) (*Cart, error)
}

type service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) Service {
	return &service{repo: repo, products: products}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *service) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, c)
}

func (s *service) AddItem(ctx context.Context, userID, productID uint, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if quantity > p.Stock {
		return nil, ErrInsufficientStock
	}

	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Repeat adds accumulate onto the existing item. The requested quantity
	// is validated against stock; the accumulated quantity is not.
	existing, err := s.repo.GetItemByProduct(ctx, c.ID, productID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		err = s.repo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+quantity)
	} else {
		err = s.repo.CreateItem(ctx, c.ID, productID, quantity)
	}
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("cart item added",
		zap.Uint("user_id", userID),
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
	)

	return s.project(ctx, c)
}

// UpdateItem replaces (not adds to) the item's quantity.
func (s *service) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*Cart, error) {
	item, err := s.repo.GetItemForUser(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity > item.Product.Stock {
		return nil, ErrInsufficientStock
	}

	if err := s.repo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, c)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uint) (*Cart, error) {
	item, err := s.repo.GetItemForUser(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, c)
}

// Clear deletes every item from the user's cart. Unlike GetCart it does
// not create the cart lazily: clearing a cart that never existed is NotFound.
func (s *service) Clear(ctx context.Context, userID uint) (*Cart, error) {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ClearItems(ctx, c.ID); err != nil {
		return nil, err
	}

	return s.project(ctx, c)
}

func (s *service) project(ctx context.Context, c *Cart) (*Cart, error) {
	rows, err := s.repo.GetCartRows(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return BuildCart(*c, rows), nil
}
