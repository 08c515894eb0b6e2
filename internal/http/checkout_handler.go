package http

import (
	"context"
	"net/http"
	"time"
)

type CheckoutHandler struct {
	timeout time.Duration
}

func NewCheckoutHandler(timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{timeout: timeout}
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	view, ok := sess.CheckoutView()
	if !ok {
		respondError(w, http.StatusConflict, "not_on_checkout", "checkout view is not active")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// PlaceOrder submits the cart. A failed order is still a 200: the failure is
// part of the checkout view, as the shopper would see it.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(ctx)

	if _, err := sess.PlaceOrder(ctx); err != nil {
		handleError(w, err)
		return
	}

	view, _ := sess.CheckoutView()
	respondJSON(w, http.StatusOK, view)
}
