// Package cart holds the session's shopping selection.
package cart

import (
	"sync"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// LineItem is one product in the cart with the quantity selected.
type LineItem struct {
	ID          domain.ID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
}

func (l LineItem) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Store keeps line items in first-added order. There is at most one line per
// product id and every stored quantity is at least 1. Totals are derived on
// each read.
type Store struct {
	mu    sync.RWMutex
	items []LineItem
}

func NewStore() *Store {
	return &Store{}
}

// Add merges quantity into the existing line for product, or appends a new
// line. Callers pass a positive quantity.
func (s *Store) Add(product domain.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.items[i].Quantity += quantity
		return
	}
	s.items = append(s.items, LineItem{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Image:       product.Image,
		Price:       product.Price,
		Quantity:    quantity,
	})
}

// Remove deletes the line for id. Unknown ids are ignored.
func (s *Store) Remove(id domain.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

// SetQuantity updates the line for id in place. A quantity of zero or less
// removes the line.
func (s *Store) SetQuantity(id domain.ID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(id)
		return
	}
	if i := s.indexOf(id); i >= 0 {
		s.items[i].Quantity = quantity
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the lines in cart order.
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Item returns the line for id.
func (s *Store) Item(id domain.ID) (LineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return LineItem{}, false
}

func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

func (s *Store) indexOf(id domain.ID) int {
	for i := range s.items {
		if s.items[i].ID.Equal(id) {
			return i
		}
	}
	return -1
}

func (s *Store) remove(id domain.ID) {
	if i := s.indexOf(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}
