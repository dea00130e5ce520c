package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
	"github.com/lidmar/site-api/internal/pkg/metrics"
)

const contentCacheKey = "site:content"

// ContentService serves and edits the site content document. Public reads go
// through the read cache; writes always load from storage and invalidate it.
type ContentService struct {
	repo  ports.ContentRepository
	cache ports.ReadCache
	ttl   time.Duration
	log   zerolog.Logger

	// gen is bumped on every invalidation; a refill started under an older
	// generation is discarded.
	gen atomic.Uint64
}

// NewContentService wires the content use cases. cache may be nil.
func NewContentService(repo ports.ContentRepository, cache ports.ReadCache, ttl time.Duration, log zerolog.Logger) *ContentService {
	return &ContentService{repo: repo, cache: cache, ttl: ttl, log: log}
}

func (s *ContentService) store() (ports.ContentRepository, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("content store: %w", domain.ErrNotConfigured)
	}
	return s.repo, nil
}

// Get returns the current site content, falling back to the built-in
// defaults when nothing has been saved yet.
func (s *ContentService) Get(ctx context.Context) (*domain.SiteContent, error) {
	if _, err := s.store(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached cachedContent
		hit, err := s.cache.Get(ctx, contentCacheKey, &cached)
		if err != nil {
			s.log.Warn().Err(err).Msg("content cache read failed")
		}
		if hit {
			metrics.CacheLookupsTotal.WithLabelValues("content", "hit").Inc()
			c := cached.Content
			c.UpdatedAt = cached.UpdatedAt
			return &c, nil
		}
		metrics.CacheLookupsTotal.WithLabelValues("content", "miss").Inc()
	}

	return s.Refresh(ctx)
}

// Refresh loads the content from storage and repopulates the cache.
func (s *ContentService) Refresh(ctx context.Context) (*domain.SiteContent, error) {
	gen := s.gen.Load()
	content, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, content, gen)
	return content, nil
}

// StartRefresher keeps the cache warm until ctx is cancelled.
func (s *ContentService) StartRefresher(ctx context.Context, interval time.Duration) {
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
					s.log.Warn().Err(err).Msg("content cache refresh failed")
				}
			}
		}
	}()
}

// Stamp returns the last modification time without loading the document.
func (s *ContentService) Stamp(ctx context.Context) (*domain.ContentStamp, error) {
	repo, err := s.store()
	if err != nil {
		return nil, err
	}
	ts, err := repo.Stamp(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.ContentStamp{UpdatedAt: ts.UTC()}, nil
}

// Replace validates and stores a complete content document.
func (s *ContentService) Replace(ctx context.Context, content *domain.SiteContent) (*domain.SiteContent, error) {
	if content == nil {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	if _, err := s.store(); err != nil {
		return nil, err
	}
	next := *content
	next.ApplyDefaults()
	return s.save(ctx, &next)
}

// SetField changes a single registered field.
func (s *ContentService) SetField(ctx context.Context, path string, value json.RawMessage) (*domain.SiteContent, error) {
	if _, err := s.store(); err != nil {
		return nil, err
	}
	content, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := content.SetField(path, value); err != nil {
		return nil, err
	}
	return s.save(ctx, content)
}

// Fields lists the editable paths.
func (s *ContentService) Fields() []domain.EditableField {
	return domain.EditableFields()
}

func (s *ContentService) load(ctx context.Context) (*domain.SiteContent, error) {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return domain.DefaultSiteContent(), nil
		}
		return nil, err
	}
	content, err := domain.DecodeContent(stored.Version, stored.Body)
	if err != nil {
		return nil, err
	}
	content.UpdatedAt = stored.UpdatedAt.UTC()
	return content, nil
}

func (s *ContentService) save(ctx context.Context, content *domain.SiteContent) (*domain.SiteContent, error) {
	if err := validate(content); err != nil {
		return nil, err
	}
	body, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	updatedAt, err := s.repo.Save(ctx, domain.ContentSchemaVersion, body)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to save site content")
		return nil, err
	}
	content.UpdatedAt = updatedAt.UTC()

	s.invalidate(ctx)
	s.log.Info().Time("updated_at", content.UpdatedAt).Msg("site content updated")
	return content, nil
}

func (s *ContentService) fill(ctx context.Context, content *domain.SiteContent, gen uint64) {
	if s.cache == nil || s.gen.Load() != gen {
		return
	}
	entry := cachedContent{Content: *content, UpdatedAt: content.UpdatedAt}
	if err := s.cache.Set(ctx, contentCacheKey, entry, s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("content cache write failed")
		return
	}
	if s.gen.Load() != gen {
		// A write landed while we were storing; drop what we just put.
		s.invalidateKey(ctx)
	}
}

func (s *ContentService) invalidate(ctx context.Context) {
	s.gen.Add(1)
	s.invalidateKey(ctx)
}

func (s *ContentService) invalidateKey(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, contentCacheKey); err != nil {
		s.log.Warn().Err(err).Msg("content cache invalidation failed")
	}
}

// cachedContent carries UpdatedAt, which SiteContent omits from JSON.
type cachedContent struct {
	Content   domain.SiteContent `json:"content"`
	UpdatedAt time.Time          `json:"updated_at"`
}
