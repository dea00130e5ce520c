package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithQueryTimeout_SetsDeadline(t *testing.T) {
	ctx, cancel := withQueryTimeout(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(queryTimeout), deadline, time.Second)
}

func TestWithQueryTimeout_KeepsShorterParent(t *testing.T) {
	parent, cancelParent := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelParent()
	parentDeadline, _ := parent.Deadline()

	ctx, cancel := withQueryTimeout(parent)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.Equal(t, parentDeadline, deadline)
}

func TestWithQueryTimeout_CancelReleases(t *testing.T) {
	ctx, cancel := withQueryTimeout(context.Background())
	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
