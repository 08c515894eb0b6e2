// Package storefront wires the cart, the router and the checkout flow into
// one shopper session and derives the view each location shows.
package storefront

import (
	"context"
	"sync"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/events"
	"github.com/fjod/go_cart/storefront/internal/router"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ViewHome     = "home"
	ViewCart     = "cart"
	ViewCheckout = "checkout"
	ViewOrders   = "orders"

	DefaultAddedMark = 2 * time.Second
)

type ProductSource interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id domain.ID) (domain.Product, bool, error)
	Invalidate(ctx context.Context)
}

type OrderHistory interface {
	GetOrders(ctx context.Context) ([]domain.Order, error)
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Session) { s.publisher = p }
}

func WithCustomer(c domain.Customer) Option {
	return func(s *Session) { s.customer = c }
}

// WithAddedMark sets how long a product stays marked as just added.
func WithAddedMark(d time.Duration) Option {
	return func(s *Session) { s.addedFor = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session is one shopper. It owns the cart for its whole lifetime and
// follows the router: entering a page starts its loader, entering checkout
// starts a fresh flow and leaving it detaches that flow.
type Session struct {
	id       string
	cart     *cart.Store
	router   *router.Router
	products ProductSource
	orders   OrderHistory
	creator  checkout.OrderCreator
	customer domain.Customer

	log       *zap.Logger
	publisher events.Publisher
	addedFor  time.Duration
	now       func() time.Time

	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	loads       sync.WaitGroup

	mu       sync.Mutex
	closed   bool
	location string
	match    router.Match
	found    bool
	home     page[[]domain.Product]
	orderP   page[[]domain.Order]
	flow     *checkout.Flow
	added    map[string]time.Time
}

func New(products ProductSource, orders OrderHistory, creator checkout.OrderCreator, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		cart:      cart.NewStore(),
		router:    router.New(),
		products:  products,
		orders:    orders,
		creator:   creator,
		log:       zap.NewNop(),
		publisher: events.Nop{},
		addedFor:  DefaultAddedMark,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
		added:     make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	s.log = s.log.With(zap.String("session", s.id))

	s.router.Register("/", ViewHome)
	s.router.Register("/cart", ViewCart)
	s.router.Register("/checkout", ViewCheckout)
	s.router.Register("/orders", ViewOrders)

	s.unsubscribe = s.router.Subscribe(s.onLocation)
	s.onLocation(s.router.Current())
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Cart() *cart.Store { return s.cart }

func (s *Session) Router() *router.Router { return s.router }

func (s *Session) Customer() domain.Customer { return s.customer }

// Navigate moves the session to location. Page loads started by the move
// run in the background; Settle waits for them.
func (s *Session) Navigate(location string) {
	s.router.Navigate(location)
}

// Settle blocks until every page load started so far has finished.
func (s *Session) Settle() {
	s.loads.Wait()
}

// Close releases the router subscription, detaches any checkout flow and
// waits for outstanding page loads.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.flow != nil {
		s.flow.Detach()
	}
	s.mu.Unlock()

	s.unsubscribe()
	s.cancel()
	s.loads.Wait()
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) onLocation(location string) {
	m, ok := s.router.Resolve(location)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	prev := s.match.View
	if !s.found {
		prev = ""
	}
	next := m.View
	if !ok {
		next = ""
	}
	s.location = router.Normalize(location)
	s.match, s.found = m, ok
	s.log.Debug("location changed", zap.String("location", location), zap.String("view", next))

	if prev == ViewCheckout && next != ViewCheckout && s.flow != nil {
		s.flow.Detach()
		s.flow = nil
	}
	// leaving a page drops whatever its loader still delivers
	if prev != next {
		s.home.invalidate()
		s.orderP.invalidate()
	}

	switch next {
	case ViewHome:
		s.loadHomeLocked()
	case ViewOrders:
		s.loadOrdersLocked()
	case ViewCheckout:
		if prev != ViewCheckout || s.flow == nil {
			s.flow = checkout.NewFlow(s.cart, s.creator,
				checkout.WithLogger(s.log),
				checkout.WithEvents(s.publisher, s.id))
		}
	}

	s.publish(events.TypeNavigation, map[string]any{
		"location": s.location,
		"view":     next,
	})
}

func (s *Session) publish(eventType string, data map[string]any) {
	s.publisher.Publish(s.ctx, events.Event{Type: eventType, Session: s.id, Data: data})
}
