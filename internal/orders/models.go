package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Items       []OrderItem     `json:"products"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes,omitempty"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"` // unit price at order time
}

// LineInput is one requested (product, quantity) pair.
type LineInput struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

type PlaceInput struct {
	Lines []LineInput
	Notes string
}

type Analytics struct {
	TotalOrders     int             `json:"totalOrders"`
	PendingOrders   int             `json:"pendingOrders"`
	CompletedOrders int             `json:"completedOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TopProducts     []TopProduct    `json:"topProducts"`
}

// TopProduct ranks a product by cumulative ordered quantity, with its
// current stock attached for context.
type TopProduct struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"totalQuantity"`
	CurrentStock  int    `json:"currentStock"`
}
