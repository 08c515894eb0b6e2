package shell

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/fjod/go_cart/storefront/internal/collaborator"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type stubProducts struct {
	items []domain.Product
	err   error
}

func (s stubProducts) Products(context.Context) ([]domain.Product, error) { return s.items, s.err }

func (s stubProducts) Product(_ context.Context, id domain.ID) (domain.Product, bool, error) {
	for _, p := range s.items {
		if p.ID.Equal(id) {
			return p, true, nil
		}
	}
	return domain.Product{}, false, s.err
}

func (stubProducts) Invalidate(context.Context) {}

type stubOrders struct {
	orders []domain.Order
}

func (s stubOrders) GetOrders(context.Context) ([]domain.Order, error) { return s.orders, nil }

type stubCreator struct {
	mu  sync.Mutex
	err error
	n   int
}

func (s *stubCreator) CreateOrder(context.Context, collaborator.OrderRequest) (collaborator.ProcessInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return collaborator.ProcessInstance{ID: "proc-1"}, s.err
}

var catalogItems = []domain.Product{
	{ID: domain.NumericID(1), Name: "Laptop", Price: 5, Image: "💻", Stock: domain.StockOf(2)},
	{ID: domain.NumericID(2), Name: "Mouse", Price: 3, Stock: domain.StockOf(0)},
}

func newSession(t *testing.T, creator *stubCreator, orders []domain.Order) *storefront.Session {
	t.Helper()
	s := storefront.New(stubProducts{items: catalogItems}, stubOrders{orders: orders}, creator,
		storefront.WithCustomer(domain.Customer{Name: "Alice Smith", Email: "alice@example.com"}))
	t.Cleanup(s.Close)
	return s
}

func run(t *testing.T, s *storefront.Session, input string) string {
	t.Helper()
	var out bytes.Buffer
	sh := New(s, strings.NewReader(input), &out, nil)
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func TestRun_HomeListing(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := newSession(t, &stubCreator{}, nil)

	out := run(t, s, "quit\n")

	assert.Contains(t, out, "Our Products")
	assert.Contains(t, out, "💻 Laptop")
	assert.Contains(t, out, "5.00 TND")
	assert.Contains(t, out, "Out of Stock")
	assert.Contains(t, out, "*Products #/")
	s.Close()
}

func TestRun_ShoppingToOrder(t *testing.T) {
	creator := &stubCreator{}
	s := newSession(t, creator, nil)

	out := run(t, s, strings.Join([]string{
		"add 1 2",
		"go /cart",
		"checkout",
		"order",
	}, "\n"))

	assert.Contains(t, out, "✓ Added!")
	assert.Contains(t, out, "Cart (2) #/cart")
	assert.Contains(t, out, "Shopping Cart")
	assert.Contains(t, out, "Total     10.00 TND")
	assert.Contains(t, out, "Laptop x 2  10.00 TND")
	assert.Contains(t, out, "Order Placed Successfully!")
	assert.Contains(t, out, "We've sent a confirmation email to alice@example.com")
	assert.True(t, s.Cart().IsEmpty())
	assert.Equal(t, 1, creator.n)
}

func TestRun_Errors(t *testing.T) {
	s := newSession(t, &stubCreator{}, nil)

	out := run(t, s, "add 2\nadd\nfly\norder\ndec 1\n")

	assert.Contains(t, out, "error: product is out of stock")
	assert.Contains(t, out, "error: missing product id")
	assert.Contains(t, out, `error: unknown command "fly"`)
	assert.Contains(t, out, "error: checkout view is not active")
	assert.Contains(t, out, "error: product is not in the cart")
}

func TestExec_StringIDsMatchTypedArguments(t *testing.T) {
	items := []domain.Product{{ID: domain.StringID("10"), Name: "Cable", Price: 2, Stock: domain.StockOf(5)}}
	s := storefront.New(stubProducts{items: items}, stubOrders{}, &stubCreator{})
	t.Cleanup(s.Close)
	sh := New(s, strings.NewReader(""), &bytes.Buffer{}, nil)
	ctx := context.Background()

	require.NoError(t, sh.Exec(ctx, "add 10"))
	require.NoError(t, sh.Exec(ctx, "inc 10"))
	line, ok := s.Cart().Item(domain.StringID("10"))
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)

	require.NoError(t, sh.Exec(ctx, "rm 10"))
	assert.True(t, s.Cart().IsEmpty())
}

func TestRun_FailedOrderShowsMessage(t *testing.T) {
	creator := &stubCreator{err: &collaborator.Error{Kind: collaborator.ErrNetwork, Message: "Failed to fetch"}}
	s := newSession(t, creator, nil)

	out := run(t, s, "add 1\ngo #/checkout\norder\n")

	assert.Contains(t, out, "Error: Failed to fetch")
	assert.Contains(t, out, "Type 'order' to place the order.")
	assert.Equal(t, 1, s.Cart().Len())
}

func TestRun_Orders(t *testing.T) {
	s := newSession(t, &stubCreator{}, []domain.Order{
		{ID: domain.NumericID(7), Status: "COMPLETED", CreatedAt: "2024-01-01T10:00:00Z", TotalAmount: 10, Currency: "TND",
			Items: []domain.OrderItem{{ProductName: "Laptop", UnitPrice: 5, Quantity: 2}}},
	})

	out := run(t, s, "go /orders\n")

	assert.Contains(t, out, "My Orders")
	assert.Contains(t, out, "Order #7")
	assert.Contains(t, out, "[Completed]")
	assert.Contains(t, out, "Laptop x 2  10.00")
}

func TestRun_EmptyPages(t *testing.T) {
	s := newSession(t, &stubCreator{}, nil)

	out := run(t, s, "go /cart\ngo /checkout\ngo /orders\ngo /missing\nhelp\n")

	assert.Contains(t, out, "Your cart is empty")
	assert.Contains(t, out, "No orders yet")
	assert.Contains(t, out, "commands:")
}

func TestRun_ContextCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := newSession(t, &stubCreator{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(s, strings.NewReader("view\n"), &out, nil).Run(ctx)

	assert.NoError(t, err)
	s.Close()
}
