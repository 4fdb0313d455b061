package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo struct{ DB *pgxpool.Pool }

// PlaceOrder runs the whole reservation as one transaction: every product
// row is locked and validated first, stock is decremented only after all
// lines pass, and the order is inserted before commit. Any failure rolls
// the whole unit back.
func (r *Repo) PlaceOrder(ctx context.Context, customerID string, in PlaceInput) (*Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	items := make([]OrderItem, 0, len(in.Lines))
	total := decimal.Zero
	// requested tracks the cumulative quantity per product so an order that
	// repeats a product cannot pass validation line by line and still
	// overdraw the row.
	requested := map[string]int{}

	for _, ln := range in.Lines {
		var (
			name  string
			price decimal.Decimal
			stock int
		)
		err := tx.QueryRow(ctx,
			`SELECT name, price, stock FROM products WHERE id = $1 FOR UPDATE`,
			ln.ProductID,
		).Scan(&name, &price, &stock)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ProductNotFoundError{ProductID: ln.ProductID}
		}
		if err != nil {
			return nil, err
		}
		if stock < requested[ln.ProductID]+ln.Quantity {
			return nil, &InsufficientStockError{
				ProductName: name,
				Available:   stock - requested[ln.ProductID],
				Requested:   ln.Quantity,
			}
		}
		requested[ln.ProductID] += ln.Quantity

		items = append(items, OrderItem{
			ProductID:   ln.ProductID,
			ProductName: name,
			Quantity:    ln.Quantity,
			Price:       price,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}

	for pid, qty := range requested {
		if _, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1`,
			pid, qty,
		); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	o := &Order{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		Items:       items,
		TotalAmount: total,
		Notes:       in.Notes,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (id, customer_id, total_amount, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		o.ID, o.CustomerID, o.TotalAmount, o.Notes, o.Status, o.CreatedAt,
	); err != nil {
		return nil, err
	}
	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)`,
			o.ID, it.ProductID, it.Quantity, it.Price,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// CancelOrder restores every line's quantity to its product and deletes the
// order, atomically. The pending check is re-verified under the order row
// lock so a concurrent status change cannot race the restock. Products that
// no longer exist are skipped.
func (r *Repo) CancelOrder(ctx context.Context, orderID string) (*Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o := &Order{ID: orderID}
	err = tx.QueryRow(ctx,
		`SELECT customer_id, total_amount, notes, status, created_at, updated_at
		 FROM orders WHERE id = $1 FOR UPDATE`,
		orderID,
	).Scan(&o.CustomerID, &o.TotalAmount, &o.Notes, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPending {
		return nil, &InvalidStateError{Status: o.Status}
	}

	rows, err := tx.Query(ctx,
		`SELECT product_id, quantity, price FROM order_items WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.Price); err != nil {
			rows.Close()
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
			it.ProductID, it.Quantity,
		); err != nil {
			return nil, err
		}
	}

	// order_items go with the order via ON DELETE CASCADE
	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repo) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	o := &Order{ID: orderID}
	err := r.DB.QueryRow(ctx,
		`SELECT customer_id, total_amount, notes, status, created_at, updated_at
		 FROM orders WHERE id = $1`,
		orderID,
	).Scan(&o.CustomerID, &o.TotalAmount, &o.Notes, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repo) ListByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	return r.list(ctx,
		`SELECT id, customer_id, total_amount, notes, status, created_at, updated_at
		 FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID)
}

func (r *Repo) ListAll(ctx context.Context) ([]*Order, error) {
	return r.list(ctx,
		`SELECT id, customer_id, total_amount, notes, status, created_at, updated_at
		 FROM orders ORDER BY created_at DESC`)
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Order
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.Notes,
			&o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) attachItems(ctx context.Context, ords []*Order) error {
	if len(ords) == 0 {
		return nil
	}
	ids := make([]string, 0, len(ords))
	byID := make(map[string]*Order, len(ords))
	for _, o := range ords {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	// LEFT JOIN: a product deleted after ordering still leaves the line
	// intact, just without a current name.
	rows, err := r.DB.Query(ctx, `
		SELECT oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.price
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`,
		ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			it      OrderItem
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return err
		}
		byID[orderID].Items = append(byID[orderID].Items, it)
	}
	return rows.Err()
}

func (r *Repo) UpdateStatus(ctx context.Context, orderID string, status Status) (*Order, error) {
	ct, err := r.DB.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrOrderNotFound
	}
	return r.GetOrder(ctx, orderID)
}

func (r *Repo) Analytics(ctx context.Context) (*Analytics, error) {
	a := &Analytics{TotalRevenue: decimal.Zero}
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'delivered'),
		       COALESCE(SUM(total_amount) FILTER (WHERE status = 'delivered'), 0)
		FROM orders`,
	).Scan(&a.TotalOrders, &a.PendingOrders, &a.CompletedOrders, &a.TotalRevenue)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT oi.product_id, COALESCE(p.name, ''), SUM(oi.quantity) AS total_qty,
		       COALESCE(p.stock, 0)
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		GROUP BY oi.product_id, p.name, p.stock
		ORDER BY total_qty DESC
		LIMIT 5`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tp TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.TotalQuantity, &tp.CurrentStock); err != nil {
			return nil, err
		}
		a.TopProducts = append(a.TopProducts, tp)
	}
	return a, rows.Err()
}
