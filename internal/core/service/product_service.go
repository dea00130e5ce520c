package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
	"github.com/lidmar/site-api/internal/pkg/metrics"
)

const productsCacheKey = "site:products"

// ProductService manages the product catalogue.
type ProductService struct {
	repo  ports.ProductRepository
	cache ports.ReadCache
	ttl   time.Duration
	log   zerolog.Logger
	gen   atomic.Uint64
}

// NewProductService wires the product use cases. cache may be nil.
func NewProductService(repo ports.ProductRepository, cache ports.ReadCache, ttl time.Duration, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, ttl: ttl, log: log}
}

func (s *ProductService) store() (ports.ProductRepository, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("product store: %w", domain.ErrNotConfigured)
	}
	return s.repo, nil
}

// List returns all products in catalogue order.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	if _, err := s.store(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached []*domain.Product
		hit, err := s.cache.Get(ctx, productsCacheKey, &cached)
		if err != nil {
			s.log.Warn().Err(err).Msg("products cache read failed")
		}
		if hit {
			metrics.CacheLookupsTotal.WithLabelValues("products", "hit").Inc()
			return cached, nil
		}
		metrics.CacheLookupsTotal.WithLabelValues("products", "miss").Inc()
	}

	return s.Refresh(ctx)
}

// Refresh loads the products from storage and repopulates the cache.
func (s *ProductService) Refresh(ctx context.Context) ([]*domain.Product, error) {
	repo, err := s.store()
	if err != nil {
		return nil, err
	}
	gen := s.gen.Load()
	products, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, products, gen)
	return products, nil
}

// StartRefresher keeps the cache warm until ctx is cancelled.
func (s *ProductService) StartRefresher(ctx context.Context, interval time.Duration) {
	if s.cache == nil || s.repo == nil || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
					s.log.Warn().Err(err).Msg("products cache refresh failed")
				}
			}
		}
	}()
}

// Stamp returns the newest modification time and product count.
func (s *ProductService) Stamp(ctx context.Context) (*domain.ProductsStamp, error) {
	repo, err := s.store()
	if err != nil {
		return nil, err
	}
	return repo.Stamp(ctx)
}

func (s *ProductService) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	repo, err := s.store()
	if err != nil {
		return nil, err
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	if p.Features == nil {
		p.Features = []string{}
	}

	created, err := repo.Create(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create product")
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info().Str("product_id", created.ID.String()).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, rawID string, p *domain.Product) (*domain.Product, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	repo, err := s.store()
	if err != nil {
		return nil, err
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	if p.Features == nil {
		p.Features = []string{}
	}

	p.ID = id
	updated, err := repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info().Str("product_id", id.String()).Msg("product updated")
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, rawID string) error {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return domain.ErrProductNotFound
	}
	repo, err := s.store()
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// fill stores products unless an invalidation happened since gen was taken.
func (s *ProductService) fill(ctx context.Context, products []*domain.Product, gen uint64) {
	if s.cache == nil || s.gen.Load() != gen {
		return
	}
	if err := s.cache.Set(ctx, productsCacheKey, products, s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("products cache write failed")
		return
	}
	if s.gen.Load() != gen {
		s.invalidateKey(ctx)
	}
}

func (s *ProductService) invalidate(ctx context.Context) {
	s.gen.Add(1)
	s.invalidateKey(ctx)
}

func (s *ProductService) invalidateKey(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, productsCacheKey); err != nil {
		s.log.Warn().Err(err).Msg("products cache invalidation failed")
	}
}
