package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
	"github.com/lidmar/site-api/internal/pkg/metrics"
)

type requestIDKey struct{}

// WithRequestID attaches the transport request id so audit records can be
// correlated with access logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Gate runs the ownership check in front of every page mutation:
//
//	unauthenticated -> authenticated -> page located -> owner compared -> authorized
//
// The owner is always read from storage on the current request.
type Gate struct {
	pages ports.PageRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
	now   func() time.Time
}

// NewGate builds a Gate. pages may be nil when no database is configured;
// audit may be nil to skip persisted audit records.
func NewGate(pages ports.PageRepository, audit ports.AuditRecorder, log zerolog.Logger) *Gate {
	return &Gate{pages: pages, audit: audit, log: log, now: time.Now}
}

// Authorize returns the stored page when claims identify its owner.
func (g *Gate) Authorize(ctx context.Context, claims *domain.SessionClaims, rawID string, op domain.PageOperation) (*domain.Page, error) {
	if claims == nil {
		metrics.GateDecisionsTotal.WithLabelValues(string(op), "unauthenticated").Inc()
		return nil, domain.ErrUnauthenticated
	}

	id, err := domain.ParseID(rawID)
	if err != nil {
		metrics.GateDecisionsTotal.WithLabelValues(string(op), "not_found").Inc()
		return nil, err
	}

	if g.pages == nil {
		return nil, fmt.Errorf("authorize %s: page store: %w", op, domain.ErrNotConfigured)
	}

	page, err := g.pages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			metrics.GateDecisionsTotal.WithLabelValues(string(op), "not_found").Inc()
		}
		return nil, err
	}

	if !page.IsOwnedBy(claims.SubjectID) {
		metrics.GateDecisionsTotal.WithLabelValues(string(op), "forbidden").Inc()
		g.log.Warn().
			Str("op", string(op)).
			Str("page_id", page.ID.String()).
			Str("actor_id", claims.SubjectID.String()).
			Str("owner_id", page.OwnerID.String()).
			Str("request_id", requestID(ctx)).
			Msg("unauthorized page mutation attempt")
		if g.audit != nil {
			g.audit.Record(domain.AuditEvent{
				ID:         uuid.NewString(),
				Kind:       domain.AuditPageForbidden,
				ActorID:    claims.SubjectID,
				OwnerID:    page.OwnerID,
				PageID:     page.ID,
				Operation:  op,
				RequestID:  requestID(ctx),
				OccurredAt: g.now().UTC(),
			})
		}
		return nil, domain.ErrForbidden
	}

	metrics.GateDecisionsTotal.WithLabelValues(string(op), "authorized").Inc()
	return page, nil
}
