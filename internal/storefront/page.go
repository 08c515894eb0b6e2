package storefront

import (
	"context"

	"github.com/fjod/go_cart/storefront/internal/collaborator"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"go.uber.org/zap"
)

type LoadState string

const (
	LoadIdle    LoadState = "idle"
	LoadLoading LoadState = "loading"
	LoadLoaded  LoadState = "loaded"
	LoadError   LoadState = "error"
)

// page is the load state of a view backed by a collaborator read. gen is
// bumped on every (re)load and when the view is left, so a result from a
// superseded load is dropped.
type page[T any] struct {
	state LoadState
	data  T
	err   string
	gen   uint64
}

func (p *page[T]) start() uint64 {
	p.gen++
	p.state = LoadLoading
	p.err = ""
	return p.gen
}

func (p *page[T]) invalidate() {
	p.gen++
	if p.state == LoadLoading {
		p.state = LoadIdle
	}
}

func (p *page[T]) finish(gen uint64, data T, err error) bool {
	if gen != p.gen {
		return false
	}
	if err != nil {
		p.state = LoadError
		p.err = collaborator.Message(err)
		return true
	}
	p.state = LoadLoaded
	p.data = data
	return true
}

func (s *Session) loadHomeLocked() {
	gen := s.home.start()
	s.loads.Add(1)
	go func() {
		defer s.loads.Done()
		products, err := s.products.Products(s.ctx)
		if err != nil {
			s.log.Warn("failed to load products", zap.String("kind", collaborator.Kind(err)), zap.Error(err))
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.home.finish(gen, products, err)
	}()
}

func (s *Session) loadOrdersLocked() {
	gen := s.orderP.start()
	s.loads.Add(1)
	go func() {
		defer s.loads.Done()
		orders, err := s.orders.GetOrders(s.ctx)
		if err != nil {
			s.log.Warn("failed to load orders", zap.String("kind", collaborator.Kind(err)), zap.Error(err))
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.orderP.finish(gen, domain.SortNewestFirst(orders), err)
	}()
}

// Refresh reloads the active page. The product cache is dropped first so
// the catalog is read again.
func (s *Session) Refresh(ctx context.Context) {
	view, ok := s.activeView()
	if !ok {
		return
	}
	if view == ViewHome {
		s.products.Invalidate(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.found || s.match.View != view {
		return
	}
	switch view {
	case ViewHome:
		s.loadHomeLocked()
	case ViewOrders:
		s.loadOrdersLocked()
	}
}

func (s *Session) activeView() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.found {
		return "", false
	}
	return s.match.View, true
}
