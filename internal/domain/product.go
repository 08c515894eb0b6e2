package domain

// Product is a catalog record as served by the products endpoint.
type Product struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       *int    `json:"stock,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// InStock is false only for an explicit zero stock; catalogs that do not
// report stock are treated as in stock.
func (p Product) InStock() bool {
	return p.Stock == nil || *p.Stock != 0
}

// StockOf is a helper for building products with a known stock level.
func StockOf(n int) *int {
	return &n
}

// Customer carries the contact fields sent along with an order.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}
