package checkout

import (
	"context"
	"sync"

	"github.com/fjod/go_cart/storefront/internal/collaborator"
	"github.com/fjod/go_cart/storefront/internal/events"
)

// MockOrderCreator records every order it is asked to create.
type MockOrderCreator struct {
	mu       sync.Mutex
	Instance collaborator.ProcessInstance
	Err      error
	Orders   []collaborator.OrderRequest

	// when set, CreateOrder signals entered and waits for release
	entered chan struct{}
	release chan struct{}
}

func (m *MockOrderCreator) CreateOrder(_ context.Context, order collaborator.OrderRequest) (collaborator.ProcessInstance, error) {
	m.mu.Lock()
	m.Orders = append(m.Orders, order)
	m.mu.Unlock()

	if m.entered != nil {
		m.entered <- struct{}{}
		<-m.release
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Instance, m.Err
}

func (m *MockOrderCreator) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Orders)
}

func blockingCreator() *MockOrderCreator {
	return &MockOrderCreator{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

// MockPublisher collects published events.
type MockPublisher struct {
	mu     sync.Mutex
	Events []string
}

func (m *MockPublisher) Publish(_ context.Context, e events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, e.Type)
}
