package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lidmar/site-api/internal/core/domain"
)

const pageColumns = `id, title, content, owner_id, created_at, updated_at`

// PageRepository implements ports.PageRepository using PostgreSQL.
type PageRepository struct {
	pool *pgxpool.Pool
}

// NewPageRepository creates a new PageRepository.
func NewPageRepository(pool *pgxpool.Pool) *PageRepository {
	return &PageRepository{pool: pool}
}

func scanPage(row pgx.Row) (*domain.Page, error) {
	var p domain.Page
	err := row.Scan(
		(*int64)(&p.ID),
		&p.Title,
		&p.Content,
		(*int64)(&p.OwnerID),
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByID reads a page straight from storage.
func (r *PageRepository) FindByID(ctx context.Context, id domain.ID) (*domain.Page, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `SELECT ` + pageColumns + ` FROM pages WHERE id = $1`

	p, err := scanPage(r.pool.QueryRow(ctx, query, int64(id)))
	if err != nil {
		if isNoRowsError(err) {
			return nil, domain.ErrPageNotFound
		}
		return nil, fmt.Errorf("get page: %w", err)
	}
	return p, nil
}

// ListByOwner returns the owner's pages, most recently updated first.
func (r *PageRepository) ListByOwner(ctx context.Context, ownerID domain.ID) ([]*domain.Page, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `SELECT ` + pageColumns + ` FROM pages WHERE owner_id = $1 ORDER BY updated_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, int64(ownerID))
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	pages := make([]*domain.Page, 0)
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}
	return pages, nil
}

// Create inserts a page owned by ownerID.
func (r *PageRepository) Create(ctx context.Context, ownerID domain.ID, title, content string) (*domain.Page, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO pages (title, content, owner_id)
		VALUES ($1, $2, $3)
		RETURNING ` + pageColumns

	p, err := scanPage(r.pool.QueryRow(ctx, query, title, content, int64(ownerID)))
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return p, nil
}

// Update coalesces each absent field to its stored value. owner_id is never
// written here.
func (r *PageRepository) Update(ctx context.Context, id domain.ID, update domain.PageUpdate) (*domain.Page, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `
		UPDATE pages
		SET title      = COALESCE($2, title),
		    content    = COALESCE($3, content),
		    updated_at = ` + bumpUpdatedAt + `
		WHERE id = $1
		RETURNING ` + pageColumns

	p, err := scanPage(r.pool.QueryRow(ctx, query, int64(id), update.Title, update.Content))
	if err != nil {
		if isNoRowsError(err) {
			return nil, domain.ErrPageNotFound
		}
		return nil, fmt.Errorf("update page: %w", err)
	}
	return p, nil
}

// Delete removes a page.
func (r *PageRepository) Delete(ctx context.Context, id domain.ID) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM pages WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPageNotFound
	}
	return nil
}
