package storefront

import (
	"context"
	"sync"

	"github.com/fjod/go_cart/storefront/internal/collaborator"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/events"
)

type MockProductSource struct {
	mu          sync.Mutex
	Items       []domain.Product
	Err         error
	Calls       int
	Invalidated int
	// when set, Products waits for a value before answering
	gate chan struct{}
}

func (m *MockProductSource) Products(ctx context.Context) ([]domain.Product, error) {
	if m.gate != nil {
		<-m.gate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return m.Items, m.Err
}

func (m *MockProductSource) Product(ctx context.Context, id domain.ID) (domain.Product, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return domain.Product{}, false, m.Err
	}
	for _, p := range m.Items {
		if p.ID.Equal(id) {
			return p, true, nil
		}
	}
	return domain.Product{}, false, nil
}

func (m *MockProductSource) Invalidate(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Invalidated++
}

func (m *MockProductSource) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

type MockOrderHistory struct {
	Orders []domain.Order
	Err    error
}

func (m *MockOrderHistory) GetOrders(context.Context) ([]domain.Order, error) {
	return m.Orders, m.Err
}

type MockOrderCreator struct {
	mu       sync.Mutex
	Instance collaborator.ProcessInstance
	Err      error
	Requests []collaborator.OrderRequest

	entered chan struct{}
	release chan struct{}
}

func (m *MockOrderCreator) CreateOrder(_ context.Context, order collaborator.OrderRequest) (collaborator.ProcessInstance, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, order)
	m.mu.Unlock()
	if m.entered != nil {
		m.entered <- struct{}{}
		<-m.release
	}
	return m.Instance, m.Err
}

type MockPublisher struct {
	mu     sync.Mutex
	Events []events.Event
}

func (m *MockPublisher) Publish(_ context.Context, e events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, e)
}

func (m *MockPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.Events {
		out = append(out, e.Type)
	}
	return out
}
