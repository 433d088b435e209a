// Package productservice manages business logic layer of products.
package productservice

import (
	"context"

	"github.com/go-petr/pet-vending/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by product service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package productservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateProductParams) (domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Product, error)
	List(ctx context.Context, arg domain.ListProductsParams) ([]domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, arg domain.UpdateProductParams) (domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.Product, error)
}

// Service facilitates product service layer logic.
type Service struct {
	repo Repo
}

// New return product service struct to manage product bussines logic.
func New(pr Repo) *Service {
	return &Service{
		repo: pr,
	}
}

// Create creates the product of the given seller.
func (s *Service) Create(ctx context.Context, sellerID uuid.UUID, name string, cost int64, quantity int32, description string) (domain.Product, error) {
	if cost < 0 || cost > domain.MaxCost {
		return domain.Product{}, domain.ErrInvalidCost
	}

	if quantity < 0 {
		return domain.Product{}, domain.ErrInvalidQuantity
	}

	arg := domain.CreateProductParams{
		ID:          uuid.New(),
		Name:        name,
		Cost:        cost,
		Quantity:    quantity,
		Description: description,
		SellerID:    sellerID,
	}

	return s.repo.Create(ctx, arg)
}

// Get returns the product with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of products.
func (s *Service) List(ctx context.Context, arg domain.ListProductsParams) ([]domain.Product, error) {
	return s.repo.List(ctx, arg)
}

// Update overwrites the non nil fields of the product owned by sellerID.
func (s *Service) Update(ctx context.Context, id, sellerID uuid.UUID, arg domain.UpdateProductParams) (domain.Product, error) {
	if arg.Cost != nil && (*arg.Cost < 0 || *arg.Cost > domain.MaxCost) {
		return domain.Product{}, domain.ErrInvalidCost
	}

	if arg.Quantity != nil && *arg.Quantity < 0 {
		return domain.Product{}, domain.ErrInvalidQuantity
	}

	if err := s.authorize(ctx, id, sellerID); err != nil {
		return domain.Product{}, err
	}

	return s.repo.Update(ctx, id, arg)
}

// Delete removes the product owned by sellerID.
func (s *Service) Delete(ctx context.Context, id, sellerID uuid.UUID) (domain.Product, error) {
	if err := s.authorize(ctx, id, sellerID); err != nil {
		return domain.Product{}, err
	}

	return s.repo.Delete(ctx, id)
}

// authorize fails unless the product exists and belongs to sellerID.
func (s *Service) authorize(ctx context.Context, id, sellerID uuid.UUID) error {
	l := zerolog.Ctx(ctx)

	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.AssertOwner(product.SellerID, sellerID); err != nil {
		l.Info().
			Str("product_id", id.String()).
			Str("seller_id", sellerID.String()).
			Msg("product owned by another seller")

		return err
	}

	return nil
}
