package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Takudzwa22/shopease/internal/cartstore"
	"github.com/Takudzwa22/shopease/internal/domain"
)

// CartService holds the session cart ledger. Every mutation writes the
// full ledger back through to its storage slot.
type CartService struct {
	store cartstore.Store
}

func NewCartService(store cartstore.Store) *CartService {
	return &CartService{store: store}
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return s.store.Load(ctx, sessionID)
}

// AddItem appends a snapshot of the product, or increments the quantity if
// the product is already in the ledger. Non-positive quantities are rejected.
func (s *CartService) AddItem(ctx context.Context, sessionID string, product *domain.Product, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindItem(product.ID); idx >= 0 {
		cart.Items[idx].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		})
	}

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity for the matching item. A missing item is
// a no-op; the ledger is returned unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(productID)
	if idx < 0 {
		return cart, nil
	}

	cart.Items[idx].Quantity = quantity
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the matching item. A missing item is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(productID)
	if idx < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// Total is the sum of price times quantity over the current ledger.
func (s *CartService) Total(ctx context.Context, sessionID string) (float64, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return cart.Total(), nil
}
