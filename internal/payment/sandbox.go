package payment

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

type CaptureOutcome int

const (
	OutcomeApproved CaptureOutcome = iota
	OutcomeDeclined
	OutcomeCancelled
)

// OutcomeSource decides how the next capture resolves.
type OutcomeSource interface {
	Next() (CaptureOutcome, string)
}

// RandomOutcome approves most captures and refuses the rest, the way a
// sandbox processor exercises both paths.
type RandomOutcome struct{}

func (RandomOutcome) Next() (CaptureOutcome, string) {
	return calcOutcome(rand.Intn(101)) // 101 because Intn is exclusive of the upper bound
}

func calcOutcome(n int) (CaptureOutcome, string) {
	if n < 90 {
		return OutcomeApproved, ""
	}
	if n < 95 {
		return OutcomeDeclined, "insufficient funds"
	}
	if n < 98 {
		return OutcomeDeclined, "card refused by issuer"
	}
	return OutcomeCancelled, ""
}

type authorization struct {
	amount      string
	currency    string
	description string
}

// SandboxGateway is an in-process stand-in for the hosted payment widget.
// Tokens are single-use: a captured token cannot be captured again.
type SandboxGateway struct {
	mu      sync.Mutex
	pending map[string]authorization
	outcome OutcomeSource
}

func NewSandboxGateway(outcome OutcomeSource) *SandboxGateway {
	return &SandboxGateway{
		pending: make(map[string]authorization),
		outcome: outcome,
	}
}

func (g *SandboxGateway) Authorize(_ context.Context, amount, currency, description string) (string, error) {
	token := uuid.NewString()

	g.mu.Lock()
	g.pending[token] = authorization{
		amount:      amount,
		currency:    currency,
		description: description,
	}
	g.mu.Unlock()

	return token, nil
}

func (g *SandboxGateway) Capture(_ context.Context, token string) (*Receipt, error) {
	g.mu.Lock()
	_, ok := g.pending[token]
	if ok {
		delete(g.pending, token)
	}
	g.mu.Unlock()

	if !ok {
		return nil, ErrUnknownToken
	}

	outcome, reason := g.outcome.Next()
	switch outcome {
	case OutcomeDeclined:
		return nil, fmt.Errorf("%w: %s", ErrDeclined, reason)
	case OutcomeCancelled:
		return nil, ErrCancelled
	}

	return &Receipt{
		ID:     fmt.Sprintf("TXN-%s", uuid.NewString()),
		Status: "COMPLETED",
		Time:   time.Now(),
	}, nil
}
