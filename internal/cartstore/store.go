// Package cartstore persists the session cart ledger in a single
// serialized slot per session.
package cartstore

import (
	"context"

	"github.com/Takudzwa22/shopease/internal/domain"
)

// Store is the key-value persistence port for the cart ledger. Load never
// fails on a missing or corrupt slot; both read as an empty cart. Writers
// are not coordinated, so concurrent sessions writing the same slot are
// last-write-wins.
type Store interface {
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Clear(ctx context.Context, sessionID string) error
}
