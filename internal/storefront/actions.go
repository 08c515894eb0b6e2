package storefront

import (
	"context"
	"fmt"

	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/events"
	"go.uber.org/zap"
)

// AddToCart adds quantity units of the product with id. The product is
// taken from the loaded product list when present, otherwise from the
// catalog. Out-of-stock products are refused.
func (s *Session) AddToCart(ctx context.Context, id domain.ID, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	product, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}
	if !product.InStock() {
		return ErrOutOfStock
	}

	s.cart.Add(product, quantity)

	s.mu.Lock()
	s.added[product.ID.String()] = s.now()
	s.mu.Unlock()

	s.log.Debug("item added", zap.Stringer("product_id", product.ID), zap.Int("quantity", quantity))
	s.publish(events.TypeItemAdded, map[string]any{
		"product_id": product.ID,
		"quantity":   quantity,
		"price":      product.Price,
	})
	return nil
}

func (s *Session) lookup(ctx context.Context, id domain.ID) (domain.Product, error) {
	s.mu.Lock()
	if s.home.state == LoadLoaded {
		for _, p := range s.home.data {
			if p.ID.Equal(id) {
				s.mu.Unlock()
				return p, nil
			}
		}
	}
	s.mu.Unlock()

	product, ok, err := s.products.Product(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("lookup product %s: %w", id, err)
	}
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return product, nil
}

func (s *Session) Increment(id domain.ID) error {
	item, ok := s.cart.Item(id)
	if !ok {
		return ErrNotInCart
	}
	return s.SetQuantity(id, item.Quantity+1)
}

// Decrement lowers the quantity by one; the line is removed at zero.
func (s *Session) Decrement(id domain.ID) error {
	item, ok := s.cart.Item(id)
	if !ok {
		return ErrNotInCart
	}
	return s.SetQuantity(id, item.Quantity-1)
}

func (s *Session) SetQuantity(id domain.ID, quantity int) error {
	if _, ok := s.cart.Item(id); !ok {
		return ErrNotInCart
	}
	s.cart.SetQuantity(id, quantity)
	if quantity <= 0 {
		s.publish(events.TypeItemRemoved, map[string]any{"product_id": id})
		return nil
	}
	s.publish(events.TypeQuantityChanged, map[string]any{"product_id": id, "quantity": quantity})
	return nil
}

// Remove drops the line for id. Removing an absent product does nothing.
func (s *Session) Remove(id domain.ID) {
	if _, ok := s.cart.Item(id); !ok {
		return
	}
	s.cart.Remove(id)
	s.publish(events.TypeItemRemoved, map[string]any{"product_id": id})
}

func (s *Session) ClearCart() {
	if s.cart.IsEmpty() {
		return
	}
	s.cart.Clear()
	s.publish(events.TypeCartCleared, nil)
}

func (s *Session) ProceedToCheckout() {
	s.Navigate("/checkout")
}

// PlaceOrder submits the cart through the active checkout flow and returns
// the resulting state. Rejections come back as checkout errors.
func (s *Session) PlaceOrder(ctx context.Context) (checkout.State, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return checkout.State{}, ErrClosed
	}
	flow := s.flow
	s.mu.Unlock()
	if flow == nil {
		return checkout.State{}, ErrNotOnCheckout
	}

	if err := flow.Submit(ctx, s.customer); err != nil {
		return flow.State(), err
	}
	return flow.State(), nil
}
