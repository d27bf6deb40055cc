package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transition is defined from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether an order may move from s to next.
// Re-applying the current status is allowed so that completing a payment
// twice stays idempotent.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	return s == OrderStatusPending
}

type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipCode" json:"zipCode"`
	Country string `bson:"country" json:"country"`
}

type Customer struct {
	Name    string  `bson:"name" json:"name"`
	Email   string  `bson:"email" json:"email"`
	Address Address `bson:"address" json:"address"`
}

// OrderItem is a frozen snapshot of a cart item at order-creation time,
// independent of later product mutation.
type OrderItem struct {
	ProductID string  `bson:"product" json:"product"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// PaymentDetails is the capture receipt attached once funds are secured.
type PaymentDetails struct {
	ID     string    `bson:"id" json:"id"`
	Status string    `bson:"status" json:"status"`
	Time   time.Time `bson:"time" json:"time"`
}

type Order struct {
	ID             string          `bson:"_id,omitempty" json:"_id"`
	Customer       Customer        `bson:"customer" json:"customer"`
	Items          []OrderItem     `bson:"items" json:"items"`
	TotalAmount    float64         `bson:"total_amount" json:"totalAmount"`
	Status         OrderStatus     `bson:"status" json:"status"`
	PaymentDetails *PaymentDetails `bson:"payment_details,omitempty" json:"paymentDetails,omitempty"`
	CreatedAt      time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time       `bson:"updated_at" json:"updatedAt"`
}

// OrderPatch carries a partial update. Nil fields are left untouched.
type OrderPatch struct {
	Status         *OrderStatus    `json:"status,omitempty"`
	PaymentDetails *PaymentDetails `json:"paymentDetails,omitempty"`
}
