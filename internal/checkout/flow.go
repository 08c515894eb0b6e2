// Package checkout turns the cart into an order through the order creator.
package checkout

import (
	"context"
	"sync"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/collaborator"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/events"
	"go.uber.org/zap"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context, order collaborator.OrderRequest) (collaborator.ProcessInstance, error)
}

type Option func(*Flow)

func WithLogger(l *zap.Logger) Option {
	return func(f *Flow) { f.log = l }
}

// WithEvents publishes terminal transitions under the given session key.
func WithEvents(p events.Publisher, session string) Option {
	return func(f *Flow) {
		f.publisher = p
		f.session = session
	}
}

// Flow is one visit to the checkout view. A new Flow starts Idle.
type Flow struct {
	cart    *cart.Store
	creator OrderCreator

	log       *zap.Logger
	publisher events.Publisher
	session   string

	mu       sync.Mutex
	state    State
	detached bool
}

func NewFlow(store *cart.Store, creator OrderCreator, opts ...Option) *Flow {
	f := &Flow{
		cart:      store,
		creator:   creator,
		log:       zap.NewNop(),
		publisher: events.Nop{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Detach abandons the flow. A submission still in flight completes against
// the collaborator but its outcome is dropped.
func (f *Flow) Detach() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detached = true
}

// Submit sends the current cart contents as an order and blocks until the
// order creator answers. The returned error only reports a rejected
// submission; the outcome is read from State.
func (f *Flow) Submit(ctx context.Context, customer domain.Customer) error {
	f.mu.Lock()
	switch {
	case f.state.Status == StatusSubmitting:
		f.mu.Unlock()
		return ErrSubmissionInProgress
	case f.state.Status.IsTerminal():
		f.mu.Unlock()
		return ErrAlreadySubmitted
	}
	items := f.cart.Items()
	if len(items) == 0 {
		f.mu.Unlock()
		return ErrEmptyCart
	}
	f.state = State{Status: StatusSubmitting}
	f.mu.Unlock()

	order := collaborator.OrderRequest{
		Items:    make([]collaborator.OrderLine, 0, len(items)),
		Customer: customer,
	}
	for _, item := range items {
		order.Items = append(order.Items, collaborator.OrderLine{ProductID: item.ID, Quantity: item.Quantity})
	}

	instance, err := f.creator.CreateOrder(ctx, order)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.detached {
		f.log.Info("checkout result discarded, view left",
			zap.Bool("success", err == nil),
			zap.String("reference", instance.ID))
		return nil
	}

	if err != nil {
		f.state = State{Status: StatusFailed, Error: collaborator.Message(err)}
		f.log.Warn("checkout failed",
			zap.String("kind", collaborator.Kind(err)),
			zap.Int("items", len(order.Items)),
			zap.Error(err))
		f.publish(ctx, events.TypeCheckoutFailed, map[string]any{
			"error": f.state.Error,
			"kind":  collaborator.Kind(err),
		})
		return nil
	}

	f.state = State{Status: StatusSucceeded, Reference: instance.ID}
	f.cart.Clear()
	f.log.Info("checkout succeeded",
		zap.String("reference", instance.ID),
		zap.Int("items", len(order.Items)))
	f.publish(ctx, events.TypeCheckoutSucceeded, map[string]any{
		"reference": instance.ID,
		"items":     order.Items,
		"email":     customer.Email,
	})
	return nil
}

func (f *Flow) publish(ctx context.Context, eventType string, data map[string]any) {
	f.publisher.Publish(ctx, events.Event{Type: eventType, Session: f.session, Data: data})
}
