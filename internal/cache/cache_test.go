package cache_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/microstepc/internal/cache"
	"github.com/comalice/microstepc/internal/microstep"
)

func TestKeyOfIsStableAndContentAddressed(t *testing.T) {
	a := cache.KeyOf([]byte(`{"type":"statechart","children":[]}`))
	b := cache.KeyOf([]byte(`{"type":"statechart","children":[]}`))
	c := cache.KeyOf([]byte(`{"type":"statechart","children":[1]}`))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCacheMissReturnsSentinel(t *testing.T) {
	c := cache.New()
	_, err := c.Get("missing")
	assert.True(t, errors.Is(err, cache.ErrNotFound))
}

func TestCachePutThenGet(t *testing.T) {
	c := cache.New()
	key := cache.KeyOf([]byte("input"))
	program := &microstep.Program{ConfigurationSize: 1}

	c.Put(key, program)
	got, err := c.Get(key)
	require.NoError(t, err)
	assert.Same(t, program, got)
	assert.Equal(t, 1, c.Len())
}

func TestCachePutIsFirstWriteWins(t *testing.T) {
	c := cache.New()
	key := cache.KeyOf([]byte("input"))
	first := &microstep.Program{ConfigurationSize: 1}
	second := &microstep.Program{ConfigurationSize: 2}

	c.Put(key, first)
	c.Put(key, second)

	got, err := c.Get(key)
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestCacheKeysPreserveInsertionOrder(t *testing.T) {
	c := cache.New()
	k1 := cache.KeyOf([]byte("a"))
	k2 := cache.KeyOf([]byte("b"))
	k3 := cache.KeyOf([]byte("c"))

	c.Put(k1, &microstep.Program{})
	c.Put(k2, &microstep.Program{})
	c.Put(k3, &microstep.Program{})

	assert.Equal(t, []cache.Key{k1, k2, k3}, c.Keys())
}
