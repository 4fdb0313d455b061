package orders

import (
	"errors"
	"fmt"
)

var (
	ErrNoProductsSelected = errors.New("no products selected")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrOrderNotFound      = errors.New("order not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidStatus      = errors.New("invalid order status")
)

// ProductNotFoundError aborts a reservation when a requested line item
// references a product that does not exist.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// InsufficientStockError aborts a reservation when a product cannot cover
// the requested quantity. Available reflects the stock observed under the
// row lock, so callers can correct and retry.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

// InvalidStateError rejects cancellation of an order that already moved
// past pending.
type InvalidStateError struct {
	Status Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot cancel %s order: only pending orders can be cancelled", e.Status)
}
