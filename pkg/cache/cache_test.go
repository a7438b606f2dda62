package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sashkashishka/balakanyna-sub000/pkg/cache"
)

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](time.Minute, 0)
		_, err := c.Get(ctx, "nope")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](time.Minute, 0)
		require.NoError(t, c.Set(ctx, "k", "v", 0))
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", v)
	})

	t.Run("expired entry", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](time.Minute, 0)
		require.NoError(t, c.Set(ctx, "k", 1, 10*time.Millisecond))
		time.Sleep(30 * time.Millisecond)
		_, err := c.Get(ctx, "k")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](time.Millisecond, 0)
		require.NoError(t, c.Set(ctx, "k", 1, -1))
		time.Sleep(5 * time.Millisecond)
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](time.Minute, 0)
		require.NoError(t, c.Set(ctx, "k", 1, 0))
		require.NoError(t, c.Delete(ctx, "k"))
		_, err := c.Get(ctx, "k")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("max entries", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](time.Minute, 2)
		require.NoError(t, c.Set(ctx, "a", 1, 0))
		require.NoError(t, c.Set(ctx, "b", 2, 0))
		require.NoError(t, c.Set(ctx, "c", 3, 0))
		assert.Equal(t, 2, c.Len())
		v, err := c.Get(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("closed cache rejects writes", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](time.Minute, 0)
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())
		assert.ErrorIs(t, c.Set(ctx, "k", 1, 0), cache.ErrClosed)
		assert.ErrorIs(t, c.Delete(ctx, "k"), cache.ErrClosed)
	})
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("loads once then serves from cache", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](time.Minute, 0)
		var calls atomic.Int32
		load := func(context.Context) (string, error) {
			calls.Add(1)
			return "loaded", nil
		}

		v, err := cache.GetOrSet(ctx, c, "getorset-once", 0, load)
		require.NoError(t, err)
		assert.Equal(t, "loaded", v)

		v, err = cache.GetOrSet(ctx, c, "getorset-once", 0, load)
		require.NoError(t, err)
		assert.Equal(t, "loaded", v)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("error is not cached", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](time.Minute, 0)
		boom := errors.New("boom")

		_, err := cache.GetOrSet(ctx, c, "getorset-error", 0, func(context.Context) (string, error) {
			return "", boom
		})
		require.ErrorIs(t, err, boom)

		_, err = c.Get(ctx, "getorset-error")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("concurrent misses share one load", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](time.Minute, 0)
		var calls atomic.Int32
		release := make(chan struct{})

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := cache.GetOrSet(ctx, c, "getorset-concurrent", 0, func(context.Context) (int, error) {
					calls.Add(1)
					<-release
					return 7, nil
				})
				assert.NoError(t, err)
				assert.Equal(t, 7, v)
			}()
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()
		assert.LessOrEqual(t, calls.Load(), int32(2))
	})
}

func TestJSONMarshaler(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}
	m := cache.JSON[payload]{}
	data, err := m.Marshal(payload{Name: "x"})
	require.NoError(t, err)

	out, err := m.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "x", out.Name)

	_, err = m.Unmarshal([]byte("{"))
	assert.ErrorIs(t, err, cache.ErrUnmarshal)
}
