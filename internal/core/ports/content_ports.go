package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lidmar/site-api/internal/core/domain"
)

// StoredContent is the raw persisted form of the site content document.
type StoredContent struct {
	Version   int
	Body      []byte
	UpdatedAt time.Time
}

// ContentRepository persists the singleton site content document.
type ContentRepository interface {
	Load(ctx context.Context) (*StoredContent, error)
	Stamp(ctx context.Context) (time.Time, error)
	Save(ctx context.Context, version int, body []byte) (time.Time, error)
}

// ContentService exposes the admin-editable site content.
type ContentService interface {
	Get(ctx context.Context) (*domain.SiteContent, error)
	Stamp(ctx context.Context) (*domain.ContentStamp, error)
	Replace(ctx context.Context, content *domain.SiteContent) (*domain.SiteContent, error)
	SetField(ctx context.Context, path string, value json.RawMessage) (*domain.SiteContent, error)
	Fields() []domain.EditableField
}
