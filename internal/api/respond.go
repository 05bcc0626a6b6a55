package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"shopora-be/internal/cart"
	"shopora-be/internal/logger"
	"shopora-be/internal/metrics"
	"shopora-be/internal/order"
	"shopora-be/internal/product"
	"shopora-be/internal/user"

	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain sentinels onto HTTP statuses and stable error
// codes. Anything unmapped is a 500 and leaks nothing to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	metrics.RequestErrors.Inc()

	status, code := http.StatusInternalServerError, "INTERNAL"
	message := err.Error()

	switch {
	case errors.Is(err, user.ErrForbidden):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, user.ErrEmailExists):
		status, code = http.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, user.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, user.ErrPasswordMismatch):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, cart.ErrCartNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, product.ErrInvalidCategory):
		status, code = http.StatusBadRequest, "INVALID_CATEGORY"
	case errors.Is(err, cart.ErrInvalidQuantity):
		status, code = http.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, cart.ErrInsufficientStock):
		status, code = http.StatusBadRequest, "INSUFFICIENT_STOCK"
	case errors.Is(err, order.ErrInvalidStatus):
		metrics.RejectedTransitions.Inc()
		status, code = http.StatusBadRequest, "INVALID_STATUS"
	case errors.Is(err, order.ErrInvalidTransition):
		metrics.RejectedTransitions.Inc()
		status, code = http.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, order.ErrValidation):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	}

	if status == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
		message = "internal server error"
	}

	writeJSON(w, status, errorBody{Error: message, Code: code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON payload", Code: "BAD_JSON"})
		return false
	}
	return true
}
