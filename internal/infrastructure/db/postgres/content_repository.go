package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
)

// ContentRepository implements ports.ContentRepository using a single-row table.
type ContentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// Load returns the stored document with its schema version.
func (r *ContentRepository) Load(ctx context.Context) (*ports.StoredContent, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const query = `SELECT schema_version, body, updated_at FROM site_content WHERE id = 1`

	var sc ports.StoredContent
	if err := r.pool.QueryRow(ctx, query).Scan(&sc.Version, &sc.Body, &sc.UpdatedAt); err != nil {
		if isNoRowsError(err) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("load site content: %w", err)
	}
	return &sc, nil
}

// Stamp returns the last modification time, or the zero time when nothing
// has been saved yet.
func (r *ContentRepository) Stamp(ctx context.Context) (time.Time, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const query = `SELECT updated_at FROM site_content WHERE id = 1`

	var ts time.Time
	if err := r.pool.QueryRow(ctx, query).Scan(&ts); err != nil {
		if isNoRowsError(err) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("site content stamp: %w", err)
	}
	return ts, nil
}

// Save upserts the document and returns its new modification time.
func (r *ContentRepository) Save(ctx context.Context, version int, body []byte) (time.Time, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const query = `
		INSERT INTO site_content (id, schema_version, body, updated_at)
		VALUES (1, $1, $2, clock_timestamp())
		ON CONFLICT (id) DO UPDATE
		SET schema_version = EXCLUDED.schema_version,
		    body           = EXCLUDED.body,
		    updated_at     = GREATEST(clock_timestamp(), site_content.updated_at + INTERVAL '1 microsecond')
		RETURNING updated_at
	`

	var ts time.Time
	if err := r.pool.QueryRow(ctx, query, version, string(body)).Scan(&ts); err != nil {
		return time.Time{}, fmt.Errorf("save site content: %w", err)
	}
	return ts, nil
}
