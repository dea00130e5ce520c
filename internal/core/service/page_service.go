package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
	"github.com/lidmar/site-api/internal/pkg/metrics"
)

// PageService implements ports.PageService. Reads are public; every write
// goes through the Gate before the repository is touched.
type PageService struct {
	repo ports.PageRepository
	gate *Gate
	log  zerolog.Logger
}

// NewPageService wires the page use cases. repo may be nil when no database
// is configured.
func NewPageService(repo ports.PageRepository, gate *Gate, log zerolog.Logger) *PageService {
	return &PageService{repo: repo, gate: gate, log: log}
}

func (s *PageService) store() (ports.PageRepository, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("page store: %w", domain.ErrNotConfigured)
	}
	return s.repo, nil
}

// Get returns the page and whether viewer may edit it. The edit flag is an
// affordance only; writes re-check ownership through the Gate.
func (s *PageService) Get(ctx context.Context, viewer *domain.SessionClaims, rawID string) (*ports.PageView, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	repo, err := s.store()
	if err != nil {
		return nil, err
	}

	page, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ports.PageView{
		Page:    page,
		CanEdit: viewer != nil && page.IsOwnedBy(viewer.SubjectID),
	}, nil
}

// ListMine returns the caller's pages, most recently updated first.
func (s *PageService) ListMine(ctx context.Context, claims *domain.SessionClaims) ([]*domain.Page, error) {
	if claims == nil {
		return nil, domain.ErrUnauthenticated
	}
	repo, err := s.store()
	if err != nil {
		return nil, err
	}
	return repo.ListByOwner(ctx, claims.SubjectID)
}

// Create stores a new page owned by the caller.
func (s *PageService) Create(ctx context.Context, claims *domain.SessionClaims, in ports.CreatePageInput) (*domain.Page, error) {
	if claims == nil {
		return nil, domain.ErrUnauthenticated
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	repo, err := s.store()
	if err != nil {
		return nil, err
	}

	page, err := repo.Create(ctx, claims.SubjectID, in.Title, in.Content)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", claims.SubjectID.String()).Msg("failed to create page")
		return nil, err
	}

	metrics.PageMutationsTotal.WithLabelValues("create").Inc()
	s.log.Info().Str("page_id", page.ID.String()).Str("owner_id", page.OwnerID.String()).Msg("page created")
	return page, nil
}

// Update authorizes, validates, then applies a coalescing update.
func (s *PageService) Update(ctx context.Context, claims *domain.SessionClaims, rawID string, update domain.PageUpdate) (*domain.Page, error) {
	page, err := s.gate.Authorize(ctx, claims, rawID, domain.OpPageUpdate)
	if err != nil {
		return nil, err
	}

	if update.Empty() {
		return nil, fmt.Errorf("%w: no valid fields to update", domain.ErrValidation)
	}

	updated, err := s.repo.Update(ctx, page.ID, update)
	if err != nil {
		s.log.Error().Err(err).Str("page_id", page.ID.String()).Msg("failed to update page")
		return nil, err
	}

	metrics.PageMutationsTotal.WithLabelValues("update").Inc()
	s.log.Info().Str("page_id", page.ID.String()).Str("owner_id", claims.SubjectID.String()).Msg("page updated")
	return updated, nil
}

// Delete authorizes, then removes the page.
func (s *PageService) Delete(ctx context.Context, claims *domain.SessionClaims, rawID string) error {
	page, err := s.gate.Authorize(ctx, claims, rawID, domain.OpPageDelete)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, page.ID); err != nil {
		if !errors.Is(err, domain.ErrPageNotFound) {
			s.log.Error().Err(err).Str("page_id", page.ID.String()).Msg("failed to delete page")
		}
		return err
	}

	metrics.PageMutationsTotal.WithLabelValues("delete").Inc()
	s.log.Info().Str("page_id", page.ID.String()).Str("owner_id", claims.SubjectID.String()).Msg("page deleted")
	return nil
}
