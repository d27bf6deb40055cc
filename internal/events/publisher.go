// Package events publishes order lifecycle events for downstream
// consumers (fulfilment, analytics).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Takudzwa22/shopease/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	EventOrderCreated   = "order.created"
	EventOrderCompleted = "order.completed"
)

type OrderEvent struct {
	OrderID     string             `json:"order_id"`
	Status      domain.OrderStatus `json:"status"`
	TotalAmount float64            `json:"total_amount"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

type Publisher interface {
	PublishOrderEvent(ctx context.Context, eventType string, order *domain.Order) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, eventType string, order *domain.Order) error {
	payload, err := json.Marshal(OrderEvent{
		OrderID:     order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		OccurredAt:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID), // order id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderEvent(context.Context, string, *domain.Order) error { return nil }
func (NoopPublisher) Close() error                                                   { return nil }
