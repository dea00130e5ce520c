package domain

import (
	"encoding/json"
	"fmt"
)

// FieldKind is the value type an editable content field accepts.
type FieldKind string

const (
	FieldText       FieldKind = "text"
	FieldLongText   FieldKind = "long_text"
	FieldStringList FieldKind = "string_list"
	FieldItemList   FieldKind = "item_list"
)

// EditableField describes one path of SiteContent that admins may change
// individually. The registry below is the complete list; there is no
// string-path traversal of arbitrary structures.
type EditableField struct {
	Path  string    `json:"path"`
	Kind  FieldKind `json:"kind"`
	Label string    `json:"label"`

	get func(*SiteContent) any
	set func(*SiteContent, json.RawMessage) error
}

func textField(path, label string, kind FieldKind, ref func(*SiteContent) *string) EditableField {
	return EditableField{
		Path:  path,
		Kind:  kind,
		Label: label,
		get:   func(c *SiteContent) any { return *ref(c) },
		set: func(c *SiteContent, raw json.RawMessage) error {
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("%w: %s expects a string", ErrValidation, path)
			}
			*ref(c) = v
			return nil
		},
	}
}

func stringListField(path, label string, ref func(*SiteContent) *[]string) EditableField {
	return EditableField{
		Path:  path,
		Kind:  FieldStringList,
		Label: label,
		get:   func(c *SiteContent) any { return *ref(c) },
		set: func(c *SiteContent, raw json.RawMessage) error {
			var v []string
			if err := json.Unmarshal(raw, &v); err != nil || v == nil {
				return fmt.Errorf("%w: %s expects a list of strings", ErrValidation, path)
			}
			*ref(c) = v
			return nil
		},
	}
}

func itemListField(path, label string, ref func(*SiteContent) *[]TextItem) EditableField {
	return EditableField{
		Path:  path,
		Kind:  FieldItemList,
		Label: label,
		get:   func(c *SiteContent) any { return *ref(c) },
		set: func(c *SiteContent, raw json.RawMessage) error {
			var v []TextItem
			if err := json.Unmarshal(raw, &v); err != nil || v == nil {
				return fmt.Errorf("%w: %s expects a list of {title, description}", ErrValidation, path)
			}
			*ref(c) = v
			return nil
		},
	}
}

var editableFields = []EditableField{
	textField("hero.title", "Hero title", FieldText, func(c *SiteContent) *string { return &c.Hero.Title }),
	textField("hero.subtitle", "Hero subtitle", FieldLongText, func(c *SiteContent) *string { return &c.Hero.Subtitle }),
	textField("about.content", "About", FieldLongText, func(c *SiteContent) *string { return &c.About.Content }),
	textField("products.title", "Products title", FieldText, func(c *SiteContent) *string { return &c.Products.Title }),
	textField("products.description", "Products description", FieldLongText, func(c *SiteContent) *string { return &c.Products.Description }),
	stringListField("products.features", "Product features", func(c *SiteContent) *[]string { return &c.Products.Features }),
	itemListField("applications", "Applications", func(c *SiteContent) *[]TextItem { return &c.Applications }),
	itemListField("why", "Why us", func(c *SiteContent) *[]TextItem { return &c.Why }),
	textField("cooperation.content", "Cooperation", FieldLongText, func(c *SiteContent) *string { return &c.Cooperation.Content }),
	textField("contact.phone", "Phone", FieldText, func(c *SiteContent) *string { return &c.Contact.Phone }),
	textField("contact.email", "Email", FieldText, func(c *SiteContent) *string { return &c.Contact.Email }),
	textField("contact.address", "Address", FieldText, func(c *SiteContent) *string { return &c.Contact.Address }),
	textField("contact.message", "Contact message", FieldLongText, func(c *SiteContent) *string { return &c.Contact.Message }),
	textField("footer.companyName", "Company name", FieldText, func(c *SiteContent) *string { return &c.Footer.CompanyName }),
	textField("footer.description", "Footer description", FieldLongText, func(c *SiteContent) *string { return &c.Footer.Description }),
}

var editableByPath = func() map[string]EditableField {
	m := make(map[string]EditableField, len(editableFields))
	for _, f := range editableFields {
		m[f.Path] = f
	}
	return m
}()

// EditableFields returns the registry in display order.
func EditableFields() []EditableField {
	out := make([]EditableField, len(editableFields))
	copy(out, editableFields)
	return out
}

// Field returns the current value stored at path.
func (c *SiteContent) Field(path string) (any, error) {
	f, ok := editableByPath[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	return f.get(c), nil
}

// SetField decodes raw into the typed field at path. The content is left
// untouched when the value has the wrong type.
func (c *SiteContent) SetField(path string, raw json.RawMessage) error {
	f, ok := editableByPath[path]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	return f.set(c, raw)
}
