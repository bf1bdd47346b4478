package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/internal/domain/repository"
	"github.com/wekesa/tillpoint-api/pkg/apperror"
)

// CartService manages the sale-in-progress for each POS session. All
// mutations validate quantities against the product stock snapshot read at
// the time of the mutation; stock is not re-fetched per keystroke and no
// lock is taken, so two sessions selling the same product race
// optimistically (last write wins at checkout).
type CartService struct {
	carts       repository.CartStore
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(carts repository.CartStore, productRepo repository.ProductRepository) *CartService {
	return &CartService{carts: carts, productRepo: productRepo}
}

// asAppError converts a domain stock error into the user-facing form
func asAppError(err error) error {
	var stockErr *entity.InsufficientStockError
	if errors.As(err, &stockErr) {
		return apperror.NewInsufficientStockError(stockErr.Error())
	}
	return err
}

// GetCart returns the session's cart, creating an empty one if needed
func (s *CartService) GetCart(sessionID string) *entity.Cart {
	return s.carts.GetOrCreate(sessionID)
}

// AddToCart adds one unit of the product to the session's cart: a new line
// with quantity 1, or an increment of the existing line. The product is read
// fresh here; that read is the stock snapshot the cart validates against.
func (s *CartService) AddToCart(ctx context.Context, sessionID string, productID uuid.UUID) (*entity.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !product.IsSellable() {
		return nil, apperror.NewBadRequestError("Product is not available for sale")
	}

	cart, err := s.carts.Update(sessionID, func(cart *entity.Cart) error {
		return cart.AddProduct(product)
	})
	if err != nil {
		return cart, asAppError(err)
	}
	return cart, nil
}

// UpdateQuantity adjusts a cart line's quantity by delta. Dropping to zero
// or below removes the line; exceeding the stock snapshot fails and leaves
// the line unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, delta int) (*entity.Cart, error) {
	cart, err := s.carts.Update(sessionID, func(cart *entity.Cart) error {
		return cart.UpdateQuantity(productID, delta)
	})
	if err != nil {
		return cart, asAppError(err)
	}
	return cart, nil
}

// RemoveFromCart removes the product's line from the cart; no-op when absent
func (s *CartService) RemoveFromCart(sessionID string, productID uuid.UUID) *entity.Cart {
	cart, _ := s.carts.Update(sessionID, func(cart *entity.Cart) error {
		cart.Remove(productID)
		return nil
	})
	return cart
}

// ClearCart resets the session's cart to empty. The destructive-action
// confirmation happens on the till screen; calling this endpoint is the
// confirmed action.
func (s *CartService) ClearCart(sessionID string) *entity.Cart {
	cart, _ := s.carts.Update(sessionID, func(cart *entity.Cart) error {
		cart.Clear()
		return nil
	})
	return cart
}

// NewSale discards the session's cart entirely, typically after the receipt
// of a completed checkout has been displayed.
func (s *CartService) NewSale(sessionID string) {
	s.carts.Delete(sessionID)
}
