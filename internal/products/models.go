package products

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Supplier  string          `json:"supplier"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Input carries the admin-editable fields of a product.
type Input struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Supplier string          `json:"supplier"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}
