package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := NewCache[string, int]()

	t.Run("miss on empty cache", func(t *testing.T) {
		_, found, inCache := c.Get("a")
		assert.False(t, found)
		assert.False(t, inCache)
	})

	t.Run("hit after set", func(t *testing.T) {
		c.Set("a", 42, true)
		v, found, inCache := c.Get("a")
		assert.True(t, inCache)
		assert.True(t, found)
		assert.Equal(t, 42, v)
	})

	t.Run("cached negative lookup", func(t *testing.T) {
		c.Set("missing", 0, false)
		_, found, inCache := c.Get("missing")
		assert.True(t, inCache)
		assert.False(t, found)
	})

	t.Run("flush clears everything", func(t *testing.T) {
		c.Flush()
		_, _, inCache := c.Get("a")
		assert.False(t, inCache)
	})
}
