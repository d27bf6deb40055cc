package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Takudzwa22/shopease/internal/domain"
	"github.com/Takudzwa22/shopease/internal/events"
	"github.com/Takudzwa22/shopease/internal/payment"
	"github.com/Takudzwa22/shopease/internal/repository"
)

const defaultCurrency = "USD"

// OrderService drives the order lifecycle: cart snapshot to pending order,
// then payment capture to completed.
type OrderService struct {
	repo      repository.OrderRepository
	cart      *CartService
	gateway   payment.Gateway
	publisher events.Publisher
}

func NewOrderService(repo repository.OrderRepository, cart *CartService, gateway payment.Gateway, publisher events.Publisher) *OrderService {
	return &OrderService{
		repo:      repo,
		cart:      cart,
		gateway:   gateway,
		publisher: publisher,
	}
}

// CreateOrder persists a new pending order. The customer, items and total
// must all be present.
func (s *OrderService) CreateOrder(ctx context.Context, customer domain.Customer, items []domain.OrderItem, totalAmount float64) (*domain.Order, error) {
	if customer.Name == "" || customer.Email == "" {
		return nil, fmt.Errorf("%w: customer name and email are required", ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	if totalAmount <= 0 {
		return nil, fmt.Errorf("%w: total amount must be positive", ErrValidation)
	}

	order := &domain.Order{
		Customer:    customer,
		Items:       items,
		TotalAmount: totalAmount,
		Status:      domain.OrderStatusPending,
	}

	if _, err := s.repo.Insert(ctx, order); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishOrderEvent(ctx, events.EventOrderCreated, order); err != nil {
		log.Printf("failed to publish %s for order %s: %v", events.EventOrderCreated, order.ID, err)
	}

	return order, nil
}

// GetOrder rejects a malformed identifier before the store is touched.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if !repository.IsValidID(id) {
		return nil, repository.ErrInvalidID
	}
	return s.repo.Find(ctx, id)
}

// ListOrders returns all orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.FindAll(ctx)
}

// UpdateOrder merges only the supplied fields into the stored order and
// refreshes the update timestamp. A status change out of a terminal status
// is rejected; re-applying the current status is allowed.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	if !repository.IsValidID(id) {
		return nil, repository.ErrInvalidID
	}
	if patch.Status != nil {
		current, err := s.repo.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		if !current.Status.CanTransitionTo(*patch.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", IllegalTransitionError, current.Status, *patch.Status)
		}
	}

	return s.repo.UpdateFields(ctx, id, patch)
}

// Checkout snapshots the session's cart ledger into a new pending order.
// The total is computed from the ledger here, never taken from the caller.
// The cart is left intact; it is only cleared once payment completes, so an
// abandoned payment keeps the cart for retry.
func (s *OrderService) Checkout(ctx context.Context, sessionID string, customer domain.Customer) (*domain.Order, error) {
	cart, err := s.cart.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]domain.OrderItem, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	return s.CreateOrder(ctx, customer, items, cart.Total())
}

// CompletePayment marks the order completed with its capture receipt, then
// clears the session cart. The two steps are not atomic: if the clear does
// not run, a completed order with a surviving cart is an acceptable,
// recoverable state, because the ledger is advisory client state.
func (s *OrderService) CompletePayment(ctx context.Context, orderID string, receipt domain.PaymentDetails, sessionID string) (*domain.Order, error) {
	if !repository.IsValidID(orderID) {
		return nil, repository.ErrInvalidID
	}
	order, err := s.repo.Find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(domain.OrderStatusCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", IllegalTransitionError, order.Status, domain.OrderStatusCompleted)
	}

	completed := domain.OrderStatusCompleted
	updated, err := s.repo.UpdateFields(ctx, orderID, domain.OrderPatch{
		Status:         &completed,
		PaymentDetails: &receipt,
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishOrderEvent(ctx, events.EventOrderCompleted, updated); err != nil {
		log.Printf("failed to publish %s for order %s: %v", events.EventOrderCompleted, updated.ID, err)
	}

	if err := s.cart.ClearCart(ctx, sessionID); err != nil {
		log.Printf("failed to clear cart for session %s after order %s: %v", sessionID, orderID, err)
	}

	return updated, nil
}

// ProcessPayment runs the capture adapter against the order's amount. On
// approval the order is completed with the receipt; on refusal or
// cancellation it stays pending and the same order can be retried.
func (s *OrderService) ProcessPayment(ctx context.Context, orderID, sessionID string) (*domain.Order, error) {
	if !repository.IsValidID(orderID) {
		return nil, repository.ErrInvalidID
	}
	order, err := s.repo.Find(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// An already-captured order is not charged again.
	if order.Status == domain.OrderStatusCompleted {
		return order, nil
	}
	if order.Status == domain.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: %s -> %s", IllegalTransitionError, order.Status, domain.OrderStatusCompleted)
	}

	amount := fmt.Sprintf("%.2f", order.TotalAmount)
	description := fmt.Sprintf("Order #%s", order.ID)

	token, err := s.gateway.Authorize(ctx, amount, defaultCurrency, description)
	if err != nil {
		return nil, fmt.Errorf("payment authorization failed: %w", err)
	}

	receipt, err := s.gateway.Capture(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.CompletePayment(ctx, orderID, domain.PaymentDetails{
		ID:     receipt.ID,
		Status: receipt.Status,
		Time:   receipt.Time,
	}, sessionID)
}
