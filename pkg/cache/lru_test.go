package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailpreview/pkg/cache"
)

func TestLRU_Basic(t *testing.T) {
	t.Parallel()

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()

		c := cache.New[string, int](3)
		c.Put("a", 1)
		c.Put("b", 2)

		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)

		_, ok = c.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("update keeps a single entry", func(t *testing.T) {
		t.Parallel()

		c := cache.New[string, int](3)
		c.Put("a", 1)
		c.Put("a", 2)

		v, _ := c.Get("a")
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, c.Len())
	})
}

func TestLRU_Eviction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		touch   func(c *cache.LRU[string, int])
		evicted string
	}{
		{"oldest goes first", func(*cache.LRU[string, int]) {}, "a"},
		{"get refreshes recency", func(c *cache.LRU[string, int]) { c.Get("a") }, "b"},
		{"put refreshes recency", func(c *cache.LRU[string, int]) { c.Put("a", 10) }, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []string
			c := cache.New(3, cache.OnEvict(func(k string, _ int) { got = append(got, k) }))
			c.Put("a", 1)
			c.Put("b", 2)
			c.Put("c", 3)
			tt.touch(c)
			c.Put("d", 4)

			assert.Equal(t, []string{tt.evicted}, got)
			_, ok := c.Get(tt.evicted)
			assert.False(t, ok)
			assert.Equal(t, 3, c.Len())
		})
	}
}

func TestLRU_GetOrCreate(t *testing.T) {
	t.Parallel()

	c := cache.New[string, int](2)
	calls := 0
	create := func() int { calls++; return 42 }

	assert.Equal(t, 42, c.GetOrCreate("a", create))
	assert.Equal(t, 42, c.GetOrCreate("a", create))
	assert.Equal(t, 1, calls)
}

func TestLRU_RemoveAndClear(t *testing.T) {
	t.Parallel()

	evicted := map[string]int{}
	c := cache.New(3, cache.OnEvict(func(k string, v int) { evicted[k] = v }))
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	assert.True(t, c.Remove("b"))
	assert.False(t, c.Remove("b"))
	assert.Equal(t, 2, evicted["b"])

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, evicted)
}

func TestLRU_CallbackMayUseCache(t *testing.T) {
	t.Parallel()

	var c *cache.LRU[string, int]
	c = cache.New(1, cache.OnEvict(func(string, int) { _ = c.Len() }))
	c.Put("a", 1)
	c.Put("b", 2)

	assert.Equal(t, 1, c.Len())
}

func TestLRU_InvalidCapacity(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { cache.New[string, int](0) })
	assert.Panics(t, func() { cache.New[string, int](-1) })
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.New[int, int](50)
	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Put(i, i*2)
			c.Get(i)
			c.GetOrCreate(i+1, func() int { return 0 })
			c.Remove(i - 1)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
