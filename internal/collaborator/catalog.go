package collaborator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

type productsEnvelope struct {
	Data []domain.Product `json:"data"`
}

// GetProducts lists the catalog. A response without a data field is an
// empty catalog.
func (c *Client) GetProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "get products"

	res, err := c.do(ctx, op, http.MethodGet, productsPath, nil)
	if err != nil {
		return nil, err
	}
	if !res.ok() {
		return nil, applicationError(op, res.status, "Failed to load products", nil)
	}

	var env productsEnvelope
	if err := json.Unmarshal(res.body, &env); err != nil {
		return nil, applicationError(op, res.status, "Failed to load products", fmt.Errorf("decode products: %w", err))
	}
	if env.Data == nil {
		return []domain.Product{}, nil
	}
	return env.Data, nil
}

// GetOrders lists the order history. The body is a bare array; an empty body
// or null is an empty history.
func (c *Client) GetOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "get orders"

	res, err := c.do(ctx, op, http.MethodGet, ordersPath, nil)
	if err != nil {
		return nil, err
	}
	if !res.ok() {
		return nil, applicationError(op, res.status, "Failed to load orders", nil)
	}
	if isBlank(res.body) {
		return []domain.Order{}, nil
	}

	var orders []domain.Order
	if err := json.Unmarshal(res.body, &orders); err != nil {
		return nil, applicationError(op, res.status, "Failed to load orders", fmt.Errorf("decode orders: %w", err))
	}
	if orders == nil {
		return []domain.Order{}, nil
	}
	return orders, nil
}
