// Package render writes JSON responses and maps ledger errors to status codes.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Index *int   `json:"index,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorResponse{Error: msg})
}

// Invalid reports a draft validation failure. Index is set only for line item fields.
func Invalid(w http.ResponseWriter, vErr *order.ValidationError) {
	resp := ErrorResponse{Error: vErr.Error(), Field: vErr.Field}
	if vErr.Index >= 0 {
		resp.Index = &vErr.Index
	}

	JSON(w, http.StatusUnprocessableEntity, resp)
}

// LedgerError picks the status for an error returned by order.Service.
func LedgerError(w http.ResponseWriter, err error) {
	var vErr *order.ValidationError

	switch {
	case errors.As(err, &vErr):
		Invalid(w, vErr)
	case errors.Is(err, order.ErrNotFound):
		Error(w, http.StatusNotFound, "order not found")
	case errors.Is(err, order.ErrInvalidAmount),
		errors.Is(err, order.ErrInvalidNumber),
		errors.Is(err, order.ErrOverpayment):
		Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("ledger operation failed", "error", err)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
