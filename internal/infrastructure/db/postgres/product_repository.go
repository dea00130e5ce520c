package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lidmar/site-api/internal/core/domain"
)

const productColumns = `id, title, description, features, image, created_at, updated_at`

// ProductRepository implements ports.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		(*int64)(&p.ID),
		&p.Title,
		&p.Description,
		&p.Features,
		&p.Image,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return &p, nil
}

// List returns the catalogue in creation order.
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// Stamp returns the latest modification time and the row count.
func (r *ProductRepository) Stamp(ctx context.Context) (*domain.ProductsStamp, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var (
		ts    *time.Time
		count int64
	)
	if err := r.pool.QueryRow(ctx, `SELECT MAX(updated_at), COUNT(*) FROM products`).Scan(&ts, &count); err != nil {
		return nil, fmt.Errorf("products stamp: %w", err)
	}
	if ts != nil {
		utc := ts.UTC()
		ts = &utc
	}
	return &domain.ProductsStamp{UpdatedAt: ts, Count: count}, nil
}

// Create inserts a product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (title, description, features, image)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + productColumns

	created, err := scanProduct(r.pool.QueryRow(ctx, query, p.Title, p.Description, p.Features, p.Image))
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

// Update replaces every editable column of the product identified by p.ID.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET title       = $2,
		    description = $3,
		    features    = $4,
		    image       = $5,
		    updated_at  = ` + bumpUpdatedAt + `
		WHERE id = $1
		RETURNING ` + productColumns

	updated, err := scanProduct(r.pool.QueryRow(ctx, query, int64(p.ID), p.Title, p.Description, p.Features, p.Image))
	if err != nil {
		if isNoRowsError(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id domain.ID) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
