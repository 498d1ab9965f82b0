package payment

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockProvider implements payment using an in-memory order book.
// This is for demo/testing without a real payment gateway. Orders settle
// when SettleOrder is called, which the sandbox pay page does on submit.
type MockProvider struct {
	baseURL string // Server URL (e.g., "http://localhost:8080")

	mu     sync.Mutex
	orders map[string]*Order
}

// NewMockProvider creates a new mock payment provider
func NewMockProvider(baseURL string) *MockProvider {
	return &MockProvider{
		baseURL: baseURL,
		orders:  make(map[string]*Order),
	}
}

func (m *MockProvider) CreateOrder(ctx context.Context, orderNo string, amountCents int64, subject string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.orders[orderNo]; exists {
		return nil, fmt.Errorf("order %s already exists", orderNo)
	}

	order := &Order{
		OrderNo:     orderNo,
		AmountCents: amountCents,
		PayURL:      fmt.Sprintf("%s/api/v1/pay/sandbox/%s", m.baseURL, orderNo),
	}
	m.orders[orderNo] = order

	copied := *order
	return &copied, nil
}

func (m *MockProvider) QueryOrder(ctx context.Context, orderNo string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderNo]
	if !ok {
		return nil, fmt.Errorf("order %s not found", orderNo)
	}
	copied := *order
	return &copied, nil
}

func (m *MockProvider) CancelOrder(ctx context.Context, orderNo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderNo]
	if !ok {
		return fmt.Errorf("order %s not found", orderNo)
	}
	if order.Paid {
		return fmt.Errorf("order %s is already paid", orderNo)
	}
	delete(m.orders, orderNo)
	return nil
}

// SettleOrder marks the order paid. Only the mock implementation has this;
// real gateways notify asynchronously instead.
func (m *MockProvider) SettleOrder(orderNo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderNo]
	if !ok {
		return fmt.Errorf("order %s not found", orderNo)
	}
	if order.Paid {
		return fmt.Errorf("order %s is already paid", orderNo)
	}
	now := time.Now()
	order.Paid = true
	order.PaidAt = &now
	return nil
}
