package ports

import (
	"context"

	"github.com/lidmar/site-api/internal/core/domain"
)

// ProductRepository persists catalogue products.
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Stamp(ctx context.Context) (*domain.ProductsStamp, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id domain.ID) error
}

// ProductService exposes the product catalogue use cases.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Stamp(ctx context.Context) (*domain.ProductsStamp, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
