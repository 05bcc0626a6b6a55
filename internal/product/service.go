package product

import (
	"context"

	"shopora-be/internal/logger"
	"shopora-be/internal/user"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	Get(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, actor user.Actor, params CreateParams) (*Product, error)
	Update(ctx context.Context, actor user.Actor, id uint, params UpdateParams) (*Product, error)
	Delete(ctx context.Context, actor user.Actor, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	if filter.Category != nil && !ValidCategory(*filter.Category) {
		return nil, ErrInvalidCategory
	}
	return s.repo.GetAll(ctx, filter)
}

func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, actor user.Actor, params CreateParams) (*Product, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}
	if !ValidCategory(params.Category) {
		return nil, ErrInvalidCategory
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.Uint("product_id", p.ID),
		zap.Uint("admin_id", actor.ID),
	)
	return p, nil
}

func (s *service) Update(ctx context.Context, actor user.Actor, id uint, params UpdateParams) (*Product, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}
	if params.Category != nil && !ValidCategory(*params.Category) {
		return nil, ErrInvalidCategory
	}
	return s.repo.Update(ctx, id, params)
}

func (s *service) Delete(ctx context.Context, actor user.Actor, id uint) error {
	if !actor.IsAdmin() {
		return user.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
