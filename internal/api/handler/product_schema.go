package handler

import "github.com/lidmar/site-api/internal/core/domain"

type productRequest struct {
	Title       string   `json:"title"       validate:"required,max=300"`
	Description string   `json:"description" validate:"max=10000"`
	Features    []string `json:"features"    validate:"dive,required,max=300"`
	Image       string   `json:"image"`
}

type productListResponse struct {
	Products []*domain.Product `json:"products"`
}

func (r productRequest) toProduct() *domain.Product {
	return &domain.Product{
		Title:       r.Title,
		Description: r.Description,
		Features:    r.Features,
		Image:       r.Image,
	}
}
