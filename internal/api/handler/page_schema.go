package handler

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
)

type createPageRequest struct {
	Title   string `json:"title"   validate:"required,max=300"`
	Content string `json:"content" validate:"max=100000"`
}

type pageResponse struct {
	ID        domain.ID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   domain.ID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CanEdit   *bool     `json:"can_edit,omitempty"`
}

type pageListResponse struct {
	Pages []pageResponse `json:"pages"`
}

func toPageResponse(p *domain.Page) pageResponse {
	return pageResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPageViewResponse(v *ports.PageView) pageResponse {
	resp := toPageResponse(v.Page)
	canEdit := v.CanEdit
	resp.CanEdit = &canEdit
	return resp
}

// decodePageUpdate reads a partial page update. Only string values for the
// recognised keys count; null, numbers, objects and owner_id are ignored. A
// body that is not a JSON object decodes to an empty update.
func decodePageUpdate(body []byte) domain.PageUpdate {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.PageUpdate{}
	}

	var update domain.PageUpdate
	update.Title = stringField(raw, "title")
	update.Content = stringField(raw, "content")
	return update
}

func stringField(raw map[string]json.RawMessage, key string) *string {
	v, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil
	}
	return &s
}
