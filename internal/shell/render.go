package shell

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/storefront"
)

const currency = "TND"

// Render writes v as plain text.
func Render(w io.Writer, v storefront.View) {
	renderNav(w, v.Nav)

	switch {
	case v.Home != nil:
		renderHome(w, v.Home)
	case v.Cart != nil:
		renderCart(w, v.Cart)
	case v.Checkout != nil:
		renderCheckout(w, v.Checkout)
	case v.Orders != nil:
		renderOrders(w, v.Orders)
	}
}

func renderNav(w io.Writer, nav storefront.Nav) {
	parts := make([]string, 0, len(nav.Links))
	for _, l := range nav.Links {
		label := l.Label
		if l.Label == "Cart" && nav.ShowBadge() {
			label = fmt.Sprintf("%s (%d)", label, nav.CartCount)
		}
		if l.Active {
			label = "*" + label
		}
		parts = append(parts, label+" "+l.Href)
	}
	fmt.Fprintf(w, "ShipOra | %s\n\n", strings.Join(parts, " | "))
}

func renderHome(w io.Writer, v *storefront.HomeView) {
	switch v.State {
	case storefront.LoadLoading, storefront.LoadIdle:
		fmt.Fprintln(w, "Loading products...")
		return
	case storefront.LoadError:
		fmt.Fprintf(w, "Error: %s\n", v.Error)
		return
	}

	fmt.Fprintln(w, "Our Products")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range v.Products {
		action := "Add to Cart"
		switch {
		case p.Added:
			action = "✓ Added!"
		case !p.InStock:
			action = "Out of Stock"
		}
		image := p.Image
		if image == "" {
			image = "📦"
		}
		fmt.Fprintf(tw, "  [%s]\t%s %s\t%s %s\t%s\n", p.ID, image, p.Name, formatPrice(p.Price), currency, action)
	}
	tw.Flush()
}

func renderCart(w io.Writer, v *storefront.CartView) {
	if v.Empty() {
		fmt.Fprintln(w, "Your cart is empty")
		fmt.Fprintln(w, "Add some products to get started!")
		return
	}

	fmt.Fprintln(w, "Shopping Cart")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, item := range v.Items {
		fmt.Fprintf(tw, "  [%s]\t%s\t%s each\tx%d\t%s %s\n",
			item.ID, item.Name, formatPrice(item.Price), item.Quantity, formatPrice(item.Subtotal), currency)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nSubtotal  %s %s\nShipping  Free\nTotal     %s %s\n",
		formatPrice(v.Total), currency, formatPrice(v.Total), currency)
}

func renderCheckout(w io.Writer, v *storefront.CheckoutView) {
	switch {
	case v.Inert:
		fmt.Fprintln(w, "Your cart is empty")
		return
	case v.Status == checkout.StatusSucceeded:
		fmt.Fprintln(w, "Order Placed Successfully!")
		fmt.Fprintf(w, "We've sent a confirmation email to %s\n", v.Email)
		return
	}

	fmt.Fprintln(w, "Checkout")
	if v.Status == checkout.StatusFailed {
		fmt.Fprintf(w, "Error: %s\n", v.Error)
	}
	fmt.Fprintln(w, "Order Summary")
	for _, item := range v.Items {
		fmt.Fprintf(w, "  %s x %d  %s %s\n", item.Name, item.Quantity, formatPrice(item.Subtotal), currency)
	}
	fmt.Fprintf(w, "Total  %s %s\n", formatPrice(v.Total), currency)
	if v.Status == checkout.StatusSubmitting {
		fmt.Fprintln(w, "Processing...")
		return
	}
	fmt.Fprintln(w, "Type 'order' to place the order.")
}

func renderOrders(w io.Writer, v *storefront.OrdersView) {
	switch v.State {
	case storefront.LoadLoading, storefront.LoadIdle:
		fmt.Fprintln(w, "Loading orders...")
		return
	case storefront.LoadError:
		fmt.Fprintf(w, "Error: %s\n", v.Error)
		return
	}
	if len(v.Orders) == 0 {
		fmt.Fprintln(w, "No orders yet")
		fmt.Fprintln(w, "Start shopping to see your orders here!")
		return
	}

	fmt.Fprintln(w, "My Orders")
	for _, o := range v.Orders {
		fmt.Fprintf(w, "\nOrder #%s  %s  [%s]\n", o.ID, o.CreatedAt, o.StatusLabel)
		for _, item := range o.Items {
			fmt.Fprintf(w, "  %s x %d  %s\n", item.ProductName, item.Quantity, formatPrice(item.Subtotal))
		}
		fmt.Fprintf(w, "  Total %s %s\n", formatPrice(o.Total), o.Currency)
	}
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
