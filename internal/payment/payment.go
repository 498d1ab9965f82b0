package payment

import (
	"context"
	"time"
)

// Order is the provider-side view of a payment order.
type Order struct {
	OrderNo     string
	AmountCents int64
	PayURL      string     // where the payer completes the payment
	Paid        bool
	PaidAt      *time.Time
}

// Provider defines the interface for payment backends.
// Supports both mock (in-memory, auto-settling) and real gateways.
type Provider interface {
	// CreateOrder registers a payable order with the provider and returns
	// the URL the payer should be sent to.
	CreateOrder(ctx context.Context, orderNo string, amountCents int64, subject string) (*Order, error)

	// QueryOrder reports the provider's current view of the order.
	QueryOrder(ctx context.Context, orderNo string) (*Order, error)

	// CancelOrder voids an unpaid order on the provider side.
	CancelOrder(ctx context.Context, orderNo string) error
}
