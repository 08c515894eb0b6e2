package storefront

import (
	"context"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// Products reads the catalog directly, without touching the home page
// state.
func (s *Session) Products(ctx context.Context) ([]ProductCard, error) {
	products, err := s.products.Products(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		at, ok := s.added[p.ID.String()]
		cards = append(cards, ProductCard{
			Product: p,
			InStock: p.InStock(),
			Added:   ok && now.Sub(at) < s.addedFor,
		})
	}
	return cards, nil
}

// Orders reads the order history, newest first.
func (s *Session) Orders(ctx context.Context) ([]OrderCard, error) {
	orders, err := s.orders.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]OrderCard, 0, len(orders))
	for _, o := range domain.SortNewestFirst(orders) {
		cards = append(cards, orderCard(o))
	}
	return cards, nil
}

func (s *Session) CartView() CartView {
	return cartView(s.cart.Items())
}

// CheckoutView renders the active flow; ok is false off the checkout
// view.
func (s *Session) CheckoutView() (CheckoutView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil {
		return CheckoutView{}, false
	}
	return *s.checkoutViewLocked(), true
}
