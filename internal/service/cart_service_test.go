package service

import (
	"context"
	"testing"

	"github.com/Takudzwa22/shopease/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id, name string, price float64) *domain.Product {
	return &domain.Product{ID: id, Name: name, Price: price}
}

func TestAddItem_NewProduct(t *testing.T) {
	sut := NewCartService(newMemCartStore())

	cart, err := sut.AddItem(context.Background(), "s1", testProduct("p1", "Headphones", 149.99), 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].ProductID)
	assert.Equal(t, "Headphones", cart.Items[0].Name)
	assert.Equal(t, 149.99, cart.Items[0].Price)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddItem_SameProduct_IncrementsQuantity(t *testing.T) {
	sut := NewCartService(newMemCartStore())
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "s1", testProduct("p1", "Headphones", 149.99), 2)
	require.NoError(t, err)
	_, err = sut.AddItem(ctx, "s1", testProduct("p1", "Headphones", 149.99), 3)
	require.NoError(t, err)
	cart, err := sut.AddItem(ctx, "s1", testProduct("p1", "Headphones", 149.99), 1)
	require.NoError(t, err)

	// One item per product id, quantity is the sum of all adds.
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 6, cart.Items[0].Quantity)
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	sut := NewCartService(newMemCartStore())
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "s1", testProduct("p1", "Headphones", 149.99), 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = sut.AddItem(ctx, "s1", testProduct("p1", "Headphones", 149.99), -3)
	assert.ErrorIs(t, err, ErrValidation)

	cart, err := sut.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestAddItem_PriceFrozenAtAddTime(t *testing.T) {
	sut := NewCartService(newMemCartStore())
	ctx := context.Background()

	product := testProduct("p1", "Headphones", 149.99)
	_, err := sut.AddItem(ctx, "s1", product, 1)
	require.NoError(t, err)

	// A later catalog price change must not touch the stored snapshot.
	product.Price = 199.99

	cart, err := sut.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 149.99, cart.Items[0].Price)
}

func TestUpdateQuantity_SetsDirectly(t *testing.T) {
	sut := NewCartService(newMemCartStore())
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "s1", testProduct("p1", "Headphones", 149.99), 2)
	require.NoError(t, err)

	cart, err := sut.UpdateQuantity(ctx, "s1", "p1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpdateQuantity_MissingItem_IsNoop(t *testing.T) {
	sut := NewCartService(newMemCartStore())
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "s1", testProduct("p1", "Headphones", 149.99), 2)
	require.NoError(t, err)

	cart, err := sut.UpdateQuantity(ctx, "s1", "unknown", 5)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestUpdateQuantity_RejectsNonPositive(t *testing.T) {
	sut := NewCartService(newMemCartStore())

	_, err := sut.UpdateQuantity(context.Background(), "s1", "p1", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRemoveItem(t *testing.T) {
	sut := NewCartService(newMemCartStore())
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "s1", testProduct("p1", "Headphones", 149.99), 2)
	require.NoError(t, err)
	_, err = sut.AddItem(ctx, "s1", testProduct("p2", "Speaker", 59.99), 1)
	require.NoError(t, err)

	cart, err := sut.RemoveItem(ctx, "s1", "p1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)

	// Removing again is a no-op.
	cart, err = sut.RemoveItem(ctx, "s1", "p1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestClearCart(t *testing.T) {
	sut := NewCartService(newMemCartStore())
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "s1", testProduct("p1", "Headphones", 149.99), 2)
	require.NoError(t, err)

	require.NoError(t, sut.ClearCart(ctx, "s1"))

	cart, err := sut.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestTotal(t *testing.T) {
	sut := NewCartService(newMemCartStore())
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "s1", testProduct("p1", "Headphones", 10), 2)
	require.NoError(t, err)
	_, err = sut.AddItem(ctx, "s1", testProduct("p2", "Speaker", 5), 1)
	require.NoError(t, err)

	total, err := sut.Total(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 25.0, total)
}

func TestTotal_EmptyCart(t *testing.T) {
	sut := NewCartService(newMemCartStore())

	total, err := sut.Total(context.Background(), "s1")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCartIsolatedPerSession(t *testing.T) {
	sut := NewCartService(newMemCartStore())
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "s1", testProduct("p1", "Headphones", 149.99), 1)
	require.NoError(t, err)

	cart, err := sut.GetCart(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
