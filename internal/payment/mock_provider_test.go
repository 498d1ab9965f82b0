package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockProvider_OrderLifecycle(t *testing.T) {
	ctx := context.Background()
	provider := NewMockProvider("http://localhost:8080")

	order, err := provider.CreateOrder(ctx, "order-1", 500_000, "Standard membership renewal")
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1/pay/sandbox/order-1", order.PayURL)
	assert.False(t, order.Paid)

	_, err = provider.CreateOrder(ctx, "order-1", 500_000, "duplicate")
	assert.Error(t, err)

	assert.NoError(t, provider.SettleOrder("order-1"))

	settled, err := provider.QueryOrder(ctx, "order-1")
	assert.NoError(t, err)
	assert.True(t, settled.Paid)
	assert.NotNil(t, settled.PaidAt)

	// Settled orders cannot be settled again or cancelled.
	assert.Error(t, provider.SettleOrder("order-1"))
	assert.Error(t, provider.CancelOrder(ctx, "order-1"))
}

func TestMockProvider_CancelUnpaidOrder(t *testing.T) {
	ctx := context.Background()
	provider := NewMockProvider("http://localhost:8080")

	_, err := provider.CreateOrder(ctx, "order-2", 200_000, "Starter membership renewal")
	assert.NoError(t, err)

	assert.NoError(t, provider.CancelOrder(ctx, "order-2"))

	_, err = provider.QueryOrder(ctx, "order-2")
	assert.Error(t, err)
}
