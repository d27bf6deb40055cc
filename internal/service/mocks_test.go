package service

import (
	"context"
	"sync"
	"time"

	"github.com/Takudzwa22/shopease/internal/cache"
	"github.com/Takudzwa22/shopease/internal/domain"
	"github.com/Takudzwa22/shopease/internal/payment"
	"github.com/Takudzwa22/shopease/internal/repository"
)

// memCartStore keeps serialized-slot semantics in a map.
type memCartStore struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
	err   error
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[string]*domain.Cart)}
}

func (m *memCartStore) Load(_ context.Context, sessionID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if cart, ok := m.carts[sessionID]; ok {
		copied := *cart
		copied.Items = append([]domain.CartItem(nil), cart.Items...)
		return &copied, nil
	}
	return &domain.Cart{SessionID: sessionID, CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
}

func (m *memCartStore) Save(_ context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.carts[cart.SessionID] = cart
	return nil
}

func (m *memCartStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.carts, sessionID)
	return nil
}

type mockProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	calls    int
	err      error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]*domain.Product)}
}

func (m *mockProductRepo) Insert(_ context.Context, product *domain.Product) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if product.ID == "" {
		product.ID = "507f1f77bcf86cd799439011"
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	m.products[product.ID] = product
	return product.ID, nil
}

func (m *mockProductRepo) Find(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if product, ok := m.products[id]; ok {
		return product, nil
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepo) FindAll(_ context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var products []*domain.Product
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

func (m *mockProductRepo) UpdateFields(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	product.UpdatedAt = time.Now()
	return product, nil
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	seq    int
	calls  int
	err    error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*domain.Order)}
}

func (m *mockOrderRepo) Insert(_ context.Context, order *domain.Order) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	m.seq++
	order.ID = newOrderID(m.seq)
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	copied := *order
	m.orders[order.ID] = &copied
	return order.ID, nil
}

func (m *mockOrderRepo) Find(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if order, ok := m.orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepo) FindAll(_ context.Context) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var orders []*domain.Order
	for _, o := range m.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (m *mockOrderRepo) UpdateFields(_ context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.PaymentDetails != nil {
		details := *patch.PaymentDetails
		order.PaymentDetails = &details
	}
	order.UpdatedAt = time.Now()
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// newOrderID builds a 24-char hex id so IsValidID accepts it.
func newOrderID(seq int) string {
	const hex = "0123456789abcdef"
	id := make([]byte, 24)
	for i := range id {
		id[i] = hex[(seq+i)%16]
	}
	return string(id)
}

type mockCache struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	err      error
}

func newMockCache() *mockCache {
	return &mockCache{products: make(map[string]*domain.Product)}
}

func (m *mockCache) Get(_ context.Context, productID string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if product, ok := m.products[productID]; ok {
		return product, nil
	}
	return nil, cache.ErrCacheMiss
}

func (m *mockCache) Set(_ context.Context, productID string, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[productID] = product
	return m.err
}

func (m *mockCache) Delete(_ context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, productID)
	return m.err
}

func (m *mockCache) get(productID string) *domain.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.products[productID]
}

// mockGateway approves every capture unless scripted otherwise.
type mockGateway struct {
	mu         sync.Mutex
	authorizes int
	captures   int
	lastAmount string
	captureErr error
	receipt    *payment.Receipt
}

func (m *mockGateway) Authorize(_ context.Context, amount, currency, description string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authorizes++
	m.lastAmount = amount
	return "token-1", nil
}

func (m *mockGateway) Capture(_ context.Context, token string) (*payment.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captures++
	if m.captureErr != nil {
		return nil, m.captureErr
	}
	if m.receipt != nil {
		return m.receipt, nil
	}
	return &payment.Receipt{ID: "TXN-test", Status: "COMPLETED", Time: time.Now()}, nil
}

type publishedEvent struct {
	eventType string
	orderID   string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, eventType string, order *domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType: eventType, orderID: order.ID})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}
