package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/storefront"
)

type CatalogHandler struct {
	timeout time.Duration
}

func NewCatalogHandler(timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{timeout: timeout}
}

type ProductsResponse struct {
	Products []storefront.ProductCard `json:"products"`
}

type OrdersResponse struct {
	Orders []storefront.OrderCard `json:"orders"`
}

func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := sessionFromContext(ctx).Products(ctx)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

func (h *CatalogHandler) Orders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := sessionFromContext(ctx).Orders(ctx)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &OrdersResponse{Orders: orders})
}
