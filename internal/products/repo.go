package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidInput = errors.New("invalid product input")
)

type Repo struct{ DB *pgxpool.Pool }

func validate(in Input) error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	return nil
}

func (r *Repo) Create(ctx context.Context, in Input) (*Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &Product{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Category:  in.Category,
		Supplier:  in.Supplier,
		Price:     in.Price,
		Stock:     in.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products (id, name, category, supplier, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		p.ID, p.Name, p.Category, p.Supplier, p.Price, p.Stock, p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Product, error) {
	p := &Product{ID: id}
	err := r.DB.QueryRow(ctx, `
		SELECT name, category, supplier, price, stock, created_at, updated_at
		FROM products WHERE id = $1`,
		id,
	).Scan(&p.Name, &p.Category, &p.Supplier, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repo) List(ctx context.Context) ([]*Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, category, supplier, price, stock, created_at, updated_at
		FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Supplier,
			&p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, id string, in Input) (*Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name = $2, category = $3, supplier = $4, price = $5, stock = $6, updated_at = now()
		WHERE id = $1`,
		id, in.Name, in.Category, in.Supplier, in.Price, in.Stock,
	)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
