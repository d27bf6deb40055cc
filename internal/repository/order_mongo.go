package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Takudzwa22/shopease/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderDoc struct {
	ID             primitive.ObjectID     `bson:"_id,omitempty"`
	Customer       domain.Customer        `bson:"customer"`
	Items          []domain.OrderItem     `bson:"items"`
	TotalAmount    float64                `bson:"total_amount"`
	Status         domain.OrderStatus     `bson:"status"`
	PaymentDetails *domain.PaymentDetails `bson:"payment_details,omitempty"`
	CreatedAt      time.Time              `bson:"created_at"`
	UpdatedAt      time.Time              `bson:"updated_at"`
}

func (d *orderDoc) toDomain() *domain.Order {
	return &domain.Order{
		ID:             d.ID.Hex(),
		Customer:       d.Customer,
		Items:          d.Items,
		TotalAmount:    d.TotalAmount,
		Status:         d.Status,
		PaymentDetails: d.PaymentDetails,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

func (m *mongoOrderRepository) Insert(ctx context.Context, order *domain.Order) (string, error) {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	doc := orderDoc{
		Customer:       order.Customer,
		Items:          order.Items,
		TotalAmount:    order.TotalAmount,
		Status:         order.Status,
		PaymentDetails: order.PaymentDetails,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	result, err := m.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}

	id := result.InsertedID.(primitive.ObjectID).Hex()
	order.ID = id
	return id, nil
}

func (m *mongoOrderRepository) Find(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var doc orderDoc
	err = m.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return doc.toDomain(), nil
}

// FindAll returns all orders, newest first.
func (m *mongoOrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	for cursor.Next(ctx) {
		var doc orderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration error: %w", err)
	}

	return orders, nil
}

func (m *mongoOrderRepository) UpdateFields(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	// Only the fields supplied in the patch are written.
	set := bson.M{"updated_at": time.Now()}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.PaymentDetails != nil {
		set["payment_details"] = *patch.PaymentDetails
	}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrOrderNotFound
	}

	return m.Find(ctx, id)
}
