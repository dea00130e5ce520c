package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Product is a catalogue entry shown in the products carousel.
type Product struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p Product) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, maxShortText)),
		validation.Field(&p.Description, validation.Length(0, maxLongText)),
		validation.Field(&p.Features, validation.Each(validation.Required, validation.Length(1, maxShortText))),
	)
}

// ProductsStamp is the lightweight freshness probe for the product list.
type ProductsStamp struct {
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Count     int64      `json:"count"`
}
