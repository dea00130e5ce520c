package handler

import (
	"encoding/json"
	"time"

	"github.com/lidmar/site-api/internal/core/domain"
)

type contentResponse struct {
	*domain.SiteContent
	UpdatedAt time.Time `json:"updated_at"`
}

type patchFieldRequest struct {
	Field string          `json:"field" validate:"required"`
	Value json.RawMessage `json:"value" validate:"required"`
}

type fieldsResponse struct {
	Fields []domain.EditableField `json:"fields"`
}

func toContentResponse(c *domain.SiteContent) contentResponse {
	return contentResponse{SiteContent: c, UpdatedAt: c.UpdatedAt}
}
