package storefront

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNotInCart       = errors.New("product is not in the cart")
	ErrNotOnCheckout   = errors.New("checkout view is not active")
	ErrClosed          = errors.New("session closed")
)
