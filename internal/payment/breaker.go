package payment

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerGateway shields the workflow from a misbehaving processor. Once
// the breaker opens, calls fail fast until the cool-down elapses.
type BreakerGateway struct {
	inner     Gateway
	authorize *gobreaker.CircuitBreaker[string]
	capture   *gobreaker.CircuitBreaker[*Receipt]
}

func NewBreakerGateway(inner Gateway) *BreakerGateway {
	settings := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}
	}
	return &BreakerGateway{
		inner:     inner,
		authorize: gobreaker.NewCircuitBreaker[string](settings("payment-authorize")),
		capture:   gobreaker.NewCircuitBreaker[*Receipt](settings("payment-capture")),
	}
}

func (b *BreakerGateway) Authorize(ctx context.Context, amount, currency, description string) (string, error) {
	return b.authorize.Execute(func() (string, error) {
		return b.inner.Authorize(ctx, amount, currency, description)
	})
}

func (b *BreakerGateway) Capture(ctx context.Context, token string) (*Receipt, error) {
	return b.capture.Execute(func() (*Receipt, error) {
		return b.inner.Capture(ctx, token)
	})
}
