package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/collaborator"
	"github.com/fjod/go_cart/storefront/internal/storefront"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError maps storefront and collaborator errors to HTTP statuses.
func handleError(w http.ResponseWriter, err error) {
	var httpStatus int
	var code string

	switch {
	case errors.Is(err, storefront.ErrInvalidQuantity):
		httpStatus, code = http.StatusBadRequest, "invalid_quantity"
	case errors.Is(err, storefront.ErrProductNotFound):
		httpStatus, code = http.StatusNotFound, "product_not_found"
	case errors.Is(err, storefront.ErrNotInCart):
		httpStatus, code = http.StatusNotFound, "not_in_cart"
	case errors.Is(err, storefront.ErrOutOfStock):
		httpStatus, code = http.StatusConflict, "out_of_stock"
	case errors.Is(err, storefront.ErrNotOnCheckout):
		httpStatus, code = http.StatusConflict, "not_on_checkout"
	case errors.Is(err, checkout.ErrSubmissionInProgress):
		httpStatus, code = http.StatusConflict, "submission_in_progress"
	case errors.Is(err, checkout.ErrEmptyCart):
		httpStatus, code = http.StatusConflict, "empty_cart"
	case errors.Is(err, checkout.ErrAlreadySubmitted):
		httpStatus, code = http.StatusConflict, "already_submitted"
	default:
		switch collaborator.Kind(err) {
		case "timeout":
			httpStatus, code = http.StatusGatewayTimeout, "timeout"
		case "network":
			httpStatus, code = http.StatusServiceUnavailable, "service_unavailable"
		case "application":
			httpStatus, code = http.StatusBadGateway, "upstream_error"
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}
		respondError(w, httpStatus, code, collaborator.Message(err))
		return
	}

	respondError(w, httpStatus, code, err.Error())
}
