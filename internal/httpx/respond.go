package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/orders"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/otp"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/products"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, success bool, msg string) {
	writeJSON(w, code, map[string]any{"success": success, "message": msg})
}

// writeError maps domain errors onto the API's status codes. Anything not
// in the taxonomy is an infrastructure failure and stays opaque.
func writeError(w http.ResponseWriter, err error) {
	var (
		pnf     *orders.ProductNotFoundError
		stock   *orders.InsufficientStockError
		invalid *orders.InvalidStateError
	)
	switch {
	case errors.Is(err, orders.ErrNoProductsSelected),
		errors.Is(err, orders.ErrInvalidQuantity),
		errors.Is(err, orders.ErrInvalidStatus),
		errors.Is(err, products.ErrInvalidInput),
		errors.Is(err, otp.ErrInvalidCode),
		errors.As(err, &invalid):
		writeMessage(w, http.StatusBadRequest, false, err.Error())
	case errors.As(err, &stock):
		writeMessage(w, http.StatusBadRequest, false, err.Error())
	case errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, products.ErrNotFound),
		errors.As(err, &pnf):
		writeMessage(w, http.StatusNotFound, false, err.Error())
	case errors.Is(err, orders.ErrAccessDenied):
		writeMessage(w, http.StatusForbidden, false, "access denied")
	default:
		writeMessage(w, http.StatusInternalServerError, false, "server error")
	}
}
