package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemcacheCleanUp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	t.Run("can remove all expired keys", func(t *testing.T) {
		// given
		c := New()
		c.Set(ctx, "dummy-1", []byte("xxx"), time.Millisecond*20)
		c.Set(ctx, "dummy-2", []byte("xxx"), time.Second*100)
		time.Sleep(time.Millisecond * 50)
		// when
		c.CleanUp()
		// then
		_, found := c.items.Load("dummy-1")
		assert.False(t, found)
		_, found = c.items.Load("dummy-2")
		assert.True(t, found)
	})
	t.Run("should remove expired keys", func(t *testing.T) {
		// given
		c := NewWithTimeout(100 * time.Millisecond)
		c.Set(ctx, "dummy", []byte("xxx"), time.Millisecond*20)
		// when
		time.Sleep(time.Millisecond * 250)
		// then
		_, found := c.items.Load("dummy")
		assert.False(t, found)
	})
	t.Run("should not remove expired keys when closed", func(t *testing.T) {
		// given
		c := NewWithTimeout(100 * time.Millisecond)
		c.Set(ctx, "dummy", []byte("xxx"), time.Millisecond*20)
		c.Close()
		// when
		time.Sleep(time.Millisecond * 250)
		// then
		_, found := c.items.Load("dummy")
		assert.True(t, found)
	})
}
