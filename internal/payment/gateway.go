// Package payment is the port to the external payment capture adapter.
package payment

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDeclined means the processor refused the charge. The order stays
	// pending and the caller may retry against the same order.
	ErrDeclined = errors.New("payment declined")

	// ErrCancelled means the payer abandoned the capture flow.
	ErrCancelled = errors.New("payment cancelled by payer")

	ErrUnknownToken = errors.New("unknown capture token")
)

// Receipt is the confirmation artifact returned once funds are secured.
type Receipt struct {
	ID     string    `json:"id"`
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// Gateway authorizes and captures funds. Authorize reserves the amount and
// returns a capture token; Capture settles it and returns the receipt.
type Gateway interface {
	Authorize(ctx context.Context, amount, currency, description string) (string, error)
	Capture(ctx context.Context, token string) (*Receipt, error)
}
