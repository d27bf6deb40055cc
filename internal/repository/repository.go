package repository

import (
	"context"
	"errors"

	"github.com/Takudzwa22/shopease/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")

	// ErrInvalidID means the identifier is not a valid ObjectID hex string.
	// It is returned before any store call is made.
	ErrInvalidID = errors.New("invalid object id")
)

// IsValidID reports whether id satisfies the store's native identifier
// format. Callers use it to reject malformed identifiers before any store
// call is issued.
func IsValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// ProductRepository defines the interface for catalog data operations.
// Consumers define this interface, not the MongoDB implementation.
type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) (string, error)
	Find(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	UpdateFields(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// OrderRepository defines the interface for order data operations. Orders
// are never deleted.
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) (string, error)
	Find(ctx context.Context, id string) (*domain.Order, error)
	FindAll(ctx context.Context) ([]*domain.Order, error)
	UpdateFields(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error)
}
