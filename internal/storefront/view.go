package storefront

import (
	"strings"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/router"
)

// View is what the session shows at its current location. Exactly one of
// the page fields is set when a route matched; none when it did not.
type View struct {
	Name     string            `json:"name"`
	Location string            `json:"location"`
	Params   map[string]string `json:"params,omitempty"`
	Nav      Nav               `json:"nav"`

	Home     *HomeView     `json:"home,omitempty"`
	Cart     *CartView     `json:"cart,omitempty"`
	Checkout *CheckoutView `json:"checkout,omitempty"`
	Orders   *OrdersView   `json:"orders,omitempty"`
}

type NavLink struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

type Nav struct {
	Links []NavLink `json:"links"`
	// CartCount is shown as a badge when positive.
	CartCount int `json:"cart_count"`
}

func (n Nav) ShowBadge() bool { return n.CartCount > 0 }

type ProductCard struct {
	domain.Product
	InStock bool `json:"in_stock"`
	Added   bool `json:"added"`
}

type HomeView struct {
	State    LoadState     `json:"state"`
	Error    string        `json:"error,omitempty"`
	Products []ProductCard `json:"products"`
}

type CartLine struct {
	cart.LineItem
	Subtotal float64 `json:"subtotal"`
}

type CartView struct {
	Items []CartLine `json:"items"`
	Count int        `json:"count"`
	Total float64    `json:"total"`
}

func (c CartView) Empty() bool { return len(c.Items) == 0 }

type CheckoutView struct {
	checkout.State
	// Inert is set when there is nothing to submit and nothing to confirm.
	Inert     bool       `json:"inert"`
	CanSubmit bool       `json:"can_submit"`
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
	// Email the confirmation goes to, shown once the order succeeded.
	Email string `json:"email,omitempty"`
}

type OrderLineView struct {
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderCard struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"status_label"`
	Tone        string          `json:"tone"`
	CreatedAt   string          `json:"created_at"`
	Items       []OrderLineView `json:"items"`
	Total       float64         `json:"total"`
	Currency    string          `json:"currency,omitempty"`
}

type OrdersView struct {
	State  LoadState   `json:"state"`
	Error  string      `json:"error,omitempty"`
	Orders []OrderCard `json:"orders"`
}

var navLinks = []NavLink{
	{Label: "Products", Href: "/"},
	{Label: "Orders", Href: "/orders"},
	{Label: "Cart", Href: "/cart"},
}

// View renders the current location.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Location: s.location,
		Nav:      s.navLocked(s.location),
	}
	if !s.found {
		return v
	}
	v.Name = s.match.View
	v.Params = s.match.Params

	switch s.match.View {
	case ViewHome:
		v.Home = s.homeViewLocked()
	case ViewCart:
		cv := cartView(s.cart.Items())
		v.Cart = &cv
	case ViewCheckout:
		v.Checkout = s.checkoutViewLocked()
	case ViewOrders:
		v.Orders = s.ordersViewLocked()
	}
	return v
}

func (s *Session) navLocked(location string) Nav {
	links := make([]NavLink, len(navLinks))
	for i, l := range navLinks {
		l.Active = l.Href == location
		l.Href = router.Link(l.Href)
		links[i] = l
	}
	return Nav{Links: links, CartCount: s.cart.Count()}
}

func (s *Session) homeViewLocked() *HomeView {
	hv := &HomeView{State: s.home.state, Error: s.home.err, Products: []ProductCard{}}
	if s.home.state != LoadLoaded {
		return hv
	}
	now := s.now()
	for _, p := range s.home.data {
		card := ProductCard{Product: p, InStock: p.InStock()}
		if at, ok := s.added[p.ID.String()]; ok {
			if now.Sub(at) < s.addedFor {
				card.Added = true
			} else {
				delete(s.added, p.ID.String())
			}
		}
		hv.Products = append(hv.Products, card)
	}
	return hv
}

func cartView(items []cart.LineItem) CartView {
	cv := CartView{Items: make([]CartLine, 0, len(items))}
	for _, item := range items {
		cv.Items = append(cv.Items, CartLine{LineItem: item, Subtotal: item.Subtotal()})
		cv.Count += item.Quantity
		cv.Total += item.Subtotal()
	}
	return cv
}

func (s *Session) checkoutViewLocked() *CheckoutView {
	var state checkout.State
	if s.flow != nil {
		state = s.flow.State()
	}
	cv := cartView(s.cart.Items())
	v := &CheckoutView{
		State: state,
		Items: cv.Items,
		Total: cv.Total,
	}
	v.Inert = cv.Empty() && state.Status != checkout.StatusSucceeded
	v.CanSubmit = !v.Inert && state.Status.CanSubmit()
	if state.Status == checkout.StatusSucceeded {
		v.Email = s.customer.Email
	}
	return v
}

func (s *Session) ordersViewLocked() *OrdersView {
	ov := &OrdersView{State: s.orderP.state, Error: s.orderP.err, Orders: []OrderCard{}}
	if s.orderP.state != LoadLoaded {
		return ov
	}
	for _, o := range s.orderP.data {
		ov.Orders = append(ov.Orders, orderCard(o))
	}
	return ov
}

func orderCard(o domain.Order) OrderCard {
	card := OrderCard{
		ID:          o.ID.String(),
		Status:      o.Status.String(),
		StatusLabel: StatusLabel(o.Status),
		Tone:        StatusTone(o.Status),
		CreatedAt:   o.CreatedAt,
		Items:       make([]OrderLineView, 0, len(o.Items)),
		Total:       float64(o.TotalAmount),
		Currency:    o.Currency,
	}
	for _, item := range o.Items {
		card.Items = append(card.Items, OrderLineView{
			ProductName: item.ProductName,
			UnitPrice:   float64(item.UnitPrice),
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal(),
		})
	}
	return card
}

// StatusLabel lowercases the status and capitalizes its first letter:
// "CONFIRMED" becomes "Confirmed".
func StatusLabel(status domain.OrderStatus) string {
	lower := strings.ToLower(string(status))
	if lower == "" {
		return ""
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

const (
	TonePending   = "pending"
	ToneConfirmed = "confirmed"
	ToneCompleted = "completed"
	ToneNeutral   = "neutral"
)

func StatusTone(status domain.OrderStatus) string {
	switch {
	case status.Is(domain.OrderStatusFulfillmentRequested):
		return TonePending
	case status.Is(domain.OrderStatusConfirmed):
		return ToneConfirmed
	case status.Is(domain.OrderStatusCompleted):
		return ToneCompleted
	default:
		return ToneNeutral
	}
}
