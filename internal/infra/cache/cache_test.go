package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/portalgun"
)

func TestListKey(t *testing.T) {
	a := listKey(0, "C-137")
	assert.True(t, strings.HasPrefix(a, "portalgun:characters:0:"))
	assert.Equal(t, a, listKey(0, "C-137"))
	assert.NotEqual(t, a, listKey(1, "C-137"))
	assert.NotEqual(t, a, listKey(0, "C-131"))
	assert.NotEqual(t, listKey(0, ""), listKey(0, " "))

	long := listKey(42, strings.Repeat("dimension with spaces ", 50))
	assert.LessOrEqual(t, len(long), 250)
	assert.NotContains(t, long, " ")
}

func TestLocalListCache(t *testing.T) {
	ctx := context.Background()
	c := NewLocalListCache(time.Minute)

	_, token, ok := c.Get(ctx, "")
	assert.False(t, ok)
	assert.NotZero(t, token)

	characters := []portalgun.Character{{ID: "1", Name: "Morty", CurrentDimension: "C-137"}}
	require.NoError(t, c.Set(ctx, "C-137", token, characters))
	characters[0].Name = "mutated"

	got, _, ok := c.Get(ctx, "C-137")
	require.True(t, ok)
	assert.Equal(t, "Morty", got[0].Name)

	_, _, ok = c.Get(ctx, "")
	assert.False(t, ok)

	require.NoError(t, c.Invalidate(ctx))
	_, next, ok := c.Get(ctx, "C-137")
	assert.False(t, ok)
	assert.NotEqual(t, token, next)
}

func TestLocalListCacheEmptyList(t *testing.T) {
	ctx := context.Background()
	c := NewLocalListCache(time.Minute)

	_, token, _ := c.Get(ctx, "C-999")
	require.NoError(t, c.Set(ctx, "C-999", token, []portalgun.Character{}))
	got, _, ok := c.Get(ctx, "C-999")
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestLocalListCacheDropsListingReadBeforeInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewLocalListCache(time.Minute)

	_, token, ok := c.Get(ctx, "")
	require.False(t, ok)

	// a write lands between the store read and Set
	require.NoError(t, c.Invalidate(ctx))

	stale := []portalgun.Character{{ID: "1", Name: "Morty", CurrentDimension: "C-137"}}
	require.NoError(t, c.Set(ctx, "", token, stale))

	_, fresh, ok := c.Get(ctx, "")
	assert.False(t, ok, "listing read before the invalidation must not be served")

	require.NoError(t, c.Set(ctx, "", fresh, stale))
	_, _, ok = c.Get(ctx, "")
	assert.True(t, ok)
}

func TestLocalListCacheZeroTokenIsIgnored(t *testing.T) {
	ctx := context.Background()
	c := NewLocalListCache(time.Minute)

	require.NoError(t, c.Set(ctx, "C-137", 0, []portalgun.Character{{ID: "1"}}))
	_, _, ok := c.Get(ctx, "C-137")
	assert.False(t, ok)
}
