package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	timeout time.Duration
}

func NewCartHandler(timeout time.Duration) *CartHandler {
	return &CartHandler{timeout: timeout}
}

type AddItemRequestDTO struct {
	ProductID domain.ID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	respondJSON(w, http.StatusOK, sess.CartView())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(ctx)

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID.IsZero() {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := sess.AddToCart(ctx, req.ProductID, req.Quantity); err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, sess.CartView())
}

// UpdateQuantity sets the line quantity; zero or less removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	id, ok := productIDParam(w, r)
	if !ok {
		return
	}
	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := sess.SetQuantity(id, req.Quantity); err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sess.CartView())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	id, ok := productIDParam(w, r)
	if !ok {
		return
	}
	sess.Remove(id)

	respondJSON(w, http.StatusOK, sess.CartView())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	sess.ClearCart()
	respondJSON(w, http.StatusOK, sess.CartView())
}

func productIDParam(w http.ResponseWriter, r *http.Request) (domain.ID, bool) {
	id := domain.ParseID(chi.URLParam(r, "product_id"))
	if id.IsZero() {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return domain.ID{}, false
	}
	return id, true
}
