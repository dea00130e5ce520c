package domain

import (
	"encoding/json"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ContentSchemaVersion is the version written by this build. Older documents
// are upgraded by DecodeContent when they are loaded.
const ContentSchemaVersion = 2

const (
	defaultContactMessage    = "Zapraszamy do kontaktu w sprawie współpracy B2B, wyceny zamówień hurtowych oraz indywidualnych warunków współpracy."
	defaultFooterCompanyName = "LiD-MAR"
	defaultFooterDescription = "Producent pasty BHP do mycia rąk"
	maxShortText             = 300
	maxLongText              = 10000
)

// TextItem is a titled paragraph used by the applications and why sections.
type TextItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (t TextItem) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Title, validation.Required, validation.Length(1, maxShortText)),
		validation.Field(&t.Description, validation.Length(0, maxLongText)),
	)
}

type HeroSection struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

func (h HeroSection) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Title, validation.Required, validation.Length(1, maxShortText)),
		validation.Field(&h.Subtitle, validation.Length(0, maxLongText)),
	)
}

type TextSection struct {
	Content string `json:"content"`
}

func (s TextSection) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Content, validation.Length(0, maxLongText)),
	)
}

type ProductsSection struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

func (p ProductsSection) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Length(0, maxShortText)),
		validation.Field(&p.Description, validation.Length(0, maxLongText)),
		validation.Field(&p.Features, validation.Each(validation.Required, validation.Length(1, maxShortText))),
	)
}

type ContactSection struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Message string `json:"message"`
}

func (c ContactSection) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Phone, validation.Length(0, maxShortText)),
		validation.Field(&c.Email, is.EmailFormat),
		validation.Field(&c.Address, validation.Length(0, maxShortText)),
		validation.Field(&c.Message, validation.Length(0, maxLongText)),
	)
}

type FooterSection struct {
	CompanyName string `json:"companyName"`
	Description string `json:"description"`
}

func (f FooterSection) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.CompanyName, validation.Length(0, maxShortText)),
		validation.Field(&f.Description, validation.Length(0, maxLongText)),
	)
}

// SiteContent is the admin-editable content of the marketing site.
type SiteContent struct {
	Hero         HeroSection     `json:"hero"`
	About        TextSection     `json:"about"`
	Products     ProductsSection `json:"products"`
	Applications []TextItem      `json:"applications"`
	Why          []TextItem      `json:"why"`
	Cooperation  TextSection     `json:"cooperation"`
	Contact      ContactSection  `json:"contact"`
	Footer       FooterSection   `json:"footer"`

	UpdatedAt time.Time `json:"-"`
}

func (c SiteContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Hero),
		validation.Field(&c.About),
		validation.Field(&c.Products),
		validation.Field(&c.Applications),
		validation.Field(&c.Why),
		validation.Field(&c.Cooperation),
		validation.Field(&c.Contact),
		validation.Field(&c.Footer),
	)
}

// ApplyDefaults fills the fields that always render with a fallback.
func (c *SiteContent) ApplyDefaults() {
	if c.Contact.Message == "" {
		c.Contact.Message = defaultContactMessage
	}
	if c.Footer.CompanyName == "" {
		c.Footer.CompanyName = defaultFooterCompanyName
	}
	if c.Footer.Description == "" {
		c.Footer.Description = defaultFooterDescription
	}
	if c.Products.Features == nil {
		c.Products.Features = []string{}
	}
	if c.Applications == nil {
		c.Applications = []TextItem{}
	}
	if c.Why == nil {
		c.Why = []TextItem{}
	}
}

// siteContentV1 stored applications as plain titles.
type siteContentV1 struct {
	SiteContent
	Applications []string `json:"applications"`
}

func (v siteContentV1) upgrade() SiteContent {
	c := v.SiteContent
	c.Applications = make([]TextItem, 0, len(v.Applications))
	for _, title := range v.Applications {
		c.Applications = append(c.Applications, TextItem{Title: title})
	}
	return c
}

// DecodeContent parses a stored document of any known schema version into the
// current shape. Callers never see a legacy layout.
func DecodeContent(version int, body []byte) (*SiteContent, error) {
	var c SiteContent
	switch version {
	case 1:
		var legacy siteContentV1
		if err := json.Unmarshal(body, &legacy); err != nil {
			return nil, fmt.Errorf("decode content v1: %w", err)
		}
		c = legacy.upgrade()
	case ContentSchemaVersion:
		if err := json.Unmarshal(body, &c); err != nil {
			return nil, fmt.Errorf("decode content v%d: %w", version, err)
		}
	default:
		return nil, fmt.Errorf("decode content: unsupported schema version %d", version)
	}
	c.ApplyDefaults()
	return &c, nil
}

// ContentStamp is the lightweight freshness probe for site content.
type ContentStamp struct {
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSiteContent is used by cmd/seed and when no row exists yet.
func DefaultSiteContent() *SiteContent {
	c := &SiteContent{
		Hero: HeroSection{
			Title:    "LiD-MAR – producent pasty BHP do mycia rąk",
			Subtitle: "Produkujemy skuteczne pasty BHP do zastosowań przemysłowych – dla zakładów pracy, warsztatów i firm produkcyjnych.",
		},
		About: TextSection{
			Content: "LiD-MAR to polski producent specjalizujący się w wytwarzaniu pasty BHP do mycia rąk dla zastosowań przemysłowych.",
		},
		Products: ProductsSection{
			Title:       "Pasta BHP do mycia rąk",
			Description: "Skuteczna pasta BHP do zastosowań przemysłowych",
			Features: []string{
				"Skuteczne usuwanie zabrudzeń przemysłowych",
				"Bezpieczna dla skóry",
				"Zastosowanie w przemyśle i warsztatach",
			},
		},
		Applications: []TextItem{
			{Title: "zakłady produkcyjne"},
			{Title: "warsztaty mechaniczne"},
			{Title: "serwisy techniczne"},
			{Title: "przemysł ciężki i lekki"},
		},
		Why: []TextItem{
			{Title: "Własna produkcja", Description: "Pełna kontrola nad procesem wytwarzania i jakością produktów."},
			{Title: "Kontrola jakości", Description: "Ścisłe standardy zapewniające powtarzalność i niezawodność."},
			{Title: "Elastyczność współpracy B2B", Description: "Dostosowanie warunków współpracy do potrzeb partnerów biznesowych."},
			{Title: "Terminowe dostawy", Description: "Rzetelność w realizacji zamówień dla firm produkcyjnych."},
		},
	}
	c.ApplyDefaults()
	return c
}
