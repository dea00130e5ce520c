package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidmar/site-api/internal/core/domain"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&createPageRequest{})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "title is required")

	long := make([]byte, 301)
	for i := range long {
		long[i] = 'a'
	}
	err = v.Validate(&createPageRequest{Title: string(long)})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "title must be at most 300 characters")

	err = v.Validate(&productRequest{Title: "ok", Features: []string{"fine", ""}})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "features[1] is required")

	assert.NoError(t, v.Validate(&createPageRequest{Title: "ok"}))
}
