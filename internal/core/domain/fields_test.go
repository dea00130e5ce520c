package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditableFields_Registry(t *testing.T) {
	fields := EditableFields()
	require.NotEmpty(t, fields)

	seen := make(map[string]bool)
	c := DefaultSiteContent()
	for _, f := range fields {
		assert.False(t, seen[f.Path], "duplicate path %s", f.Path)
		seen[f.Path] = true
		_, err := c.Field(f.Path)
		assert.NoError(t, err, f.Path)
	}

	fields[0].Path = "mutated"
	assert.Equal(t, "hero.title", EditableFields()[0].Path, "callers get a copy")
}

func TestSiteContent_SetField(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		raw     string
		wantErr error
		check   func(t *testing.T, c *SiteContent)
	}{
		{
			name: "text",
			path: "contact.phone",
			raw:  `"+48 600 000 000"`,
			check: func(t *testing.T, c *SiteContent) {
				assert.Equal(t, "+48 600 000 000", c.Contact.Phone)
			},
		},
		{
			name: "string list",
			path: "products.features",
			raw:  `["a","b"]`,
			check: func(t *testing.T, c *SiteContent) {
				assert.Equal(t, []string{"a", "b"}, c.Products.Features)
			},
		},
		{
			name: "item list",
			path: "applications",
			raw:  `[{"title":"Mines"}]`,
			check: func(t *testing.T, c *SiteContent) {
				assert.Equal(t, []TextItem{{Title: "Mines"}}, c.Applications)
			},
		},
		{name: "unknown path", path: "hero", raw: `"x"`, wantErr: ErrUnknownField},
		{name: "prototype path", path: "__proto__.polluted", raw: `"x"`, wantErr: ErrUnknownField},
		{name: "text given number", path: "hero.title", raw: `1`, wantErr: ErrValidation},
		{name: "list given string", path: "products.features", raw: `"a"`, wantErr: ErrValidation},
		{name: "list given null", path: "why", raw: `null`, wantErr: ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultSiteContent()
			before := *c
			err := c.SetField(tt.path, json.RawMessage(tt.raw))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, *c)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestSiteContent_Field(t *testing.T) {
	c := DefaultSiteContent()
	v, err := c.Field("footer.companyName")
	require.NoError(t, err)
	assert.Equal(t, defaultFooterCompanyName, v)

	_, err = c.Field("footer")
	assert.ErrorIs(t, err, ErrUnknownField)
}
