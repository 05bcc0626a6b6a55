package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopora-be/internal/inventory"
	"shopora-be/internal/logger"
	"shopora-be/internal/product"
	"shopora-be/internal/user"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, actor user.Actor, params CreateOrderParams) (*Order, error)
	GetOrder(ctx context.Context, actor user.Actor, orderID uint) (*Order, error)
	ListOrders(ctx context.Context, actor user.Actor) ([]*Order, error)
	ListAllOrders(ctx context.Context, actor user.Actor, status *Status) ([]*Order, error)

	Cancel(ctx context.Context, actor user.Actor, orderID uint) (*Order, error)
	UpdateStatus(ctx context.Context, actor user.Actor, orderID uint, status string) (*Order, error)

	RequestCancellation(ctx context.Context, actor user.Actor, orderID uint, reason string) (*Order, error)
	RespondCancellation(ctx context.Context, actor user.Actor, orderID uint, approve bool) (*Order, error)
	PendingCancellations(ctx context.Context, actor user.Actor) ([]*Order, error)

	ConfirmDelivery(ctx context.Context, actor user.Actor, orderID uint, notes string) (*Order, error)
	MarkDelivered(ctx context.Context, actor user.Actor, orderID uint) (*Order, error)
	PendingDeliveries(ctx context.Context, actor user.Actor) ([]*Order, error)
}

type service struct {
	repo     Repository
	products product.Repository
	stock    inventory.Ledger
	calc     *Calculator
}

func NewService(repo Repository, products product.Repository, stock inventory.Ledger, calc *Calculator) Service {
	return &service{repo: repo, products: products, stock: stock, calc: calc}
}

func (s *service) Create(ctx context.Context, actor user.Actor, params CreateOrderParams) (*Order, error) {
	if err := validateShipping(params); err != nil {
		return nil, err
	}
	if len(params.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrValidation)
	}

	resolved, total, err := s.calc.Normalize(ctx, params.Items)
	if err != nil {
		return nil, err
	}

	// Lines whose product cannot be resolved are dropped from the order,
	// but only after the total was computed over every submitted line.
	kept := make([]ResolvedLine, 0, len(resolved))
	for _, line := range resolved {
		if _, err := s.products.GetByID(ctx, line.ProductID); err != nil {
			if errors.Is(err, product.ErrNotFound) {
				logger.FromCtx(ctx).Warn("skipping order line for unknown product",
					zap.Uint("product_id", line.ProductID),
				)
				continue
			}
			return nil, err
		}
		kept = append(kept, line)
	}

	o := &Order{
		UserID:          actor.ID,
		TotalAmount:     total,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		PaymentMethod:   ParsePaymentMethod(params.PaymentMethod),
		ShippingStreet:  strings.TrimSpace(params.ShippingStreet),
		ShippingCity:    strings.TrimSpace(params.ShippingCity),
		ShippingState:   strings.TrimSpace(params.ShippingState),
		ShippingZipCode: strings.TrimSpace(params.ShippingZipCode),
	}

	if err := s.repo.CreateOrder(ctx, o, kept); err != nil {
		return nil, err
	}

	// Stock is adjusted after the order is committed. A failed decrement
	// does not fail the checkout; it is logged for reconciliation.
	for _, line := range kept {
		if err := s.stock.Decrement(ctx, line.ProductID, line.Quantity); err != nil {
			logger.FromCtx(ctx).Error("failed to decrement stock for ordered product",
				zap.Uint("order_id", o.ID),
				zap.Uint("product_id", line.ProductID),
				zap.Int("quantity", line.Quantity),
				zap.Error(err),
			)
		}
	}

	return s.repo.GetOrderDetail(ctx, o.ID)
}

func validateShipping(params CreateOrderParams) error {
	fields := map[string]string{
		"shipping_street":   params.ShippingStreet,
		"shipping_city":     params.ShippingCity,
		"shipping_state":    params.ShippingState,
		"shipping_zip_code": params.ShippingZipCode,
	}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, name)
		}
	}
	return nil
}

// load fetches an order visible to the actor. Non-owners without the admin
// role get a not-found, never a forbidden, so order IDs are not probeable.
func (s *service) load(ctx context.Context, actor user.Actor, orderID uint) (*Order, error) {
	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// loadOwned is load restricted to the order's owner; admins acting on
// someone else's order go through the admin endpoints instead.
func (s *service) loadOwned(ctx context.Context, actor user.Actor, orderID uint) (*Order, error) {
	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != actor.ID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, actor user.Actor, orderID uint) (*Order, error) {
	return s.load(ctx, actor, orderID)
}

func (s *service) ListOrders(ctx context.Context, actor user.Actor) ([]*Order, error) {
	return s.repo.ListByUser(ctx, actor.ID)
}

func (s *service) ListAllOrders(ctx context.Context, actor user.Actor, status *Status) ([]*Order, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}
	return s.repo.ListAll(ctx, status)
}

func (s *service) Cancel(ctx context.Context, actor user.Actor, orderID uint) (*Order, error) {
	o, err := s.loadOwned(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Status.Cancellable() {
		return nil, fmt.Errorf("%w: only pending or processing orders can be cancelled", ErrInvalidTransition)
	}

	// Direct cancellation does not restore stock; only an approved
	// cancellation request does.
	if err := s.repo.SetStatus(ctx, orderID, o.Status, StatusCancelled); err != nil {
		return nil, err
	}

	return s.repo.GetOrderDetail(ctx, orderID)
}

func (s *service) UpdateStatus(ctx context.Context, actor user.Actor, orderID uint, status string) (*Order, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}

	target, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Status.CanBecome(target); err != nil {
		return nil, err
	}

	if err := s.repo.SetStatus(ctx, orderID, o.Status, target); err != nil {
		return nil, err
	}

	return s.repo.GetOrderDetail(ctx, orderID)
}

func (s *service) RequestCancellation(ctx context.Context, actor user.Actor, orderID uint, reason string) (*Order, error) {
	o, err := s.loadOwned(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Status.Cancellable() {
		return nil, fmt.Errorf("%w: cancellation can only be requested for pending or processing orders", ErrInvalidTransition)
	}

	if err := s.repo.MarkCancelRequested(ctx, orderID, o.Status, reason); err != nil {
		return nil, err
	}

	return s.repo.GetOrderDetail(ctx, orderID)
}

func (s *service) RespondCancellation(ctx context.Context, actor user.Actor, orderID uint, approve bool) (*Order, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusCancelRequested {
		return nil, fmt.Errorf("%w: order has no pending cancellation request", ErrInvalidTransition)
	}

	if approve {
		if err := s.repo.ApproveCancellation(ctx, orderID); err != nil {
			return nil, err
		}
		for _, item := range o.Items {
			if err := s.stock.Restore(ctx, item.ProductID, item.Quantity); err != nil {
				logger.FromCtx(ctx).Error("failed to restore stock for cancelled order",
					zap.Uint("order_id", orderID),
					zap.Uint("product_id", item.ProductID),
					zap.Int("quantity", item.Quantity),
					zap.Error(err),
				)
			}
		}
	} else {
		if err := s.repo.RejectCancellation(ctx, orderID); err != nil {
			return nil, err
		}
	}

	return s.repo.GetOrderDetail(ctx, orderID)
}

func (s *service) PendingCancellations(ctx context.Context, actor user.Actor) ([]*Order, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}
	return s.repo.ListPendingCancellations(ctx)
}

func (s *service) ConfirmDelivery(ctx context.Context, actor user.Actor, orderID uint, notes string) (*Order, error) {
	o, err := s.loadOwned(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusShipped {
		return nil, fmt.Errorf("%w: only shipped orders can be confirmed", ErrInvalidTransition)
	}

	if err := s.repo.MarkDeliveryConfirmed(ctx, orderID, notes); err != nil {
		return nil, err
	}

	return s.repo.GetOrderDetail(ctx, orderID)
}

func (s *service) MarkDelivered(ctx context.Context, actor user.Actor, orderID uint) (*Order, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusDeliveryConfirmed {
		return nil, fmt.Errorf("%w: delivery has not been confirmed by the customer", ErrInvalidTransition)
	}

	if err := s.repo.MarkDelivered(ctx, orderID); err != nil {
		return nil, err
	}

	return s.repo.GetOrderDetail(ctx, orderID)
}

func (s *service) PendingDeliveries(ctx context.Context, actor user.Actor) ([]*Order, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}
	return s.repo.ListPendingDeliveries(ctx)
}
