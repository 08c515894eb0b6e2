package router

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storefrontRoutes() *Router {
	r := New()
	r.Register("/", "home")
	r.Register("/cart", "cart")
	r.Register("/checkout", "checkout")
	r.Register("/orders", "orders")
	return r
}

func TestResolve_Root(t *testing.T) {
	r := storefrontRoutes()

	m, ok := r.Resolve("/")
	require.True(t, ok)
	assert.Equal(t, "home", m.View)
	assert.Empty(t, m.Params)
}

func TestResolve_Unknown(t *testing.T) {
	r := storefrontRoutes()

	_, ok := r.Resolve("/unknown")
	assert.False(t, ok)
}

func TestResolve_NormalizesLocation(t *testing.T) {
	r := storefrontRoutes()

	tests := []struct {
		location string
		view     string
	}{
		{"", "home"},
		{"#", "home"},
		{"#/", "home"},
		{"cart", "cart"},
		{"#/cart", "cart"},
		{"#orders", "orders"},
	}
	for _, tt := range tests {
		m, ok := r.Resolve(tt.location)
		require.True(t, ok, tt.location)
		assert.Equal(t, tt.view, m.View, tt.location)
	}
}

func TestResolve_NoPrefixOrPartialMatch(t *testing.T) {
	r := storefrontRoutes()

	for _, location := range []string{"/cart/", "/cart/1", "/carts", "/orders/x", "//"} {
		_, ok := r.Resolve(location)
		assert.False(t, ok, location)
	}
}

func TestResolve_Params(t *testing.T) {
	r := New()
	r.Register("/products/:id", "product")
	r.Register("/orders/:orderId/items/:line", "order-line")

	m, ok := r.Resolve("/products/42")
	require.True(t, ok)
	assert.Equal(t, "product", m.View)
	assert.Equal(t, map[string]string{"id": "42"}, m.Params)

	m, ok = r.Resolve("#/orders/a-1/items/3")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"orderId": "a-1", "line": "3"}, m.Params)

	_, ok = r.Resolve("/products/")
	assert.False(t, ok, "parameter segment must be non-empty")

	_, ok = r.Resolve("/products/1/2")
	assert.False(t, ok, "parameter spans exactly one segment")
}

func TestResolve_FirstRegisteredWins(t *testing.T) {
	r := New()
	r.Register("/items/:id", "by-id")
	r.Register("/items/new", "new-item")
	r.Register("/items/:id", "duplicate")

	m, ok := r.Resolve("/items/new")
	require.True(t, ok)
	assert.Equal(t, "by-id", m.View)
}

func TestResolve_InvalidParamNameIsLiteral(t *testing.T) {
	r := New()
	r.Register("/x/:a-b", "x")

	_, ok := r.Resolve("/x/anything")
	assert.False(t, ok)

	m, ok := r.Resolve("/x/:a-b")
	require.True(t, ok)
	assert.Equal(t, "x", m.View)
}

func TestNavigate_NotifiesSubscribersInOrder(t *testing.T) {
	r := storefrontRoutes()
	var got []string

	unsubA := r.Subscribe(func(location string) { got = append(got, "a"+location) })
	unsubB := r.Subscribe(func(location string) { got = append(got, "b"+location) })
	defer unsubA()
	defer unsubB()

	r.Navigate("#/cart")

	assert.Equal(t, []string{"a/cart", "b/cart"}, got)
	assert.Equal(t, "/cart", r.Current())
	m, ok := r.ResolveCurrent()
	require.True(t, ok)
	assert.Equal(t, "cart", m.View)
}

func TestSubscribe_UnsubscribeIsIdempotent(t *testing.T) {
	r := New()
	calls := 0

	unsub := r.Subscribe(func(string) { calls++ })
	other := r.Subscribe(func(string) {})
	require.Equal(t, 2, r.Subscribers())

	unsub()
	unsub()
	assert.Equal(t, 1, r.Subscribers())

	r.Navigate("/")
	assert.Equal(t, 0, calls)

	other()
	assert.Equal(t, 0, r.Subscribers())
}

func TestSubscriber_CanResolveDuringNotification(t *testing.T) {
	r := storefrontRoutes()
	var view string
	unsub := r.Subscribe(func(location string) {
		m, ok := r.Resolve(location)
		if ok {
			view = m.View
		}
	})
	defer unsub()

	r.Navigate("/orders")

	assert.Equal(t, "orders", view)
}

func TestNavigate_Concurrent(t *testing.T) {
	r := storefrontRoutes()
	var mu sync.Mutex
	count := 0
	unsub := r.Subscribe(func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	defer unsub()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Navigate("/cart")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, count)
}

func TestRedirect_FromSubscriberRunsAfterDelivery(t *testing.T) {
	r := storefrontRoutes()
	var got []string
	unsubA := r.Subscribe(func(location string) {
		got = append(got, "a"+location)
		if location == "/checkout" {
			r.Redirect("#/cart")
		}
	})
	unsubB := r.Subscribe(func(location string) { got = append(got, "b"+location) })
	defer unsubA()
	defer unsubB()

	r.Navigate("/checkout")

	assert.Equal(t, []string{"a/checkout", "b/checkout", "a/cart", "b/cart"}, got)
	assert.Equal(t, "/cart", r.Current())
}

func TestRedirect_OutsideDeliveryNavigates(t *testing.T) {
	r := storefrontRoutes()
	var got []string
	unsub := r.Subscribe(func(location string) { got = append(got, location) })
	defer unsub()

	r.Redirect("orders")

	assert.Equal(t, []string{"/orders"}, got)
	assert.Equal(t, "/orders", r.Current())
}

func TestLink(t *testing.T) {
	assert.Equal(t, "#/cart", Link("/cart"))
	assert.Equal(t, "#/", Link(""))
}
