package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{name: "canonical", input: "12", want: 12},
		{name: "max int64", input: "9223372036854775807", want: 9223372036854775807},
		{name: "leading zero", input: "012", wantErr: true},
		{name: "plus sign", input: "+12", wantErr: true},
		{name: "leading space", input: " 12", wantErr: true},
		{name: "decimal", input: "12.0", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-3", wantErr: true},
		{name: "overflow", input: "9223372036854775808", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "word", input: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestID_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		ID ID `json:"id"`
	}{ID: 42})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"42"}`, string(raw))

	var decoded struct {
		ID ID `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"id":"7"}`), &decoded))
	assert.Equal(t, ID(7), decoded.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id":"07"}`), &decoded))
}

func TestPage_IsOwnedBy(t *testing.T) {
	p := &Page{ID: 1, OwnerID: 5}
	assert.True(t, p.IsOwnedBy(5))
	assert.False(t, p.IsOwnedBy(6))
}

func TestPageUpdate_Empty(t *testing.T) {
	title := "t"
	assert.True(t, PageUpdate{}.Empty())
	assert.False(t, PageUpdate{Title: &title}.Empty())
}
