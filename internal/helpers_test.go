package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sashkashishka/balakanyna-sub000/internal"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?limit=20&offset=x&ratio=0.5&active=true&name=quiz", nil)
	requestVia(t, req, func(c *internal.Context) {
		assert.Equal(t, 20, internal.Query[int](c, "limit"))
		assert.Equal(t, int64(20), internal.Query[int64](c, "limit"))
		assert.Equal(t, 0, internal.Query[int](c, "offset"))
		assert.InDelta(t, 0.5, internal.Query[float64](c, "ratio"), 0.0001)
		assert.True(t, internal.Query[bool](c, "active"))
		assert.Equal(t, "quiz", internal.Query[string](c, "name"))
		assert.Equal(t, "", internal.Query[string](c, "missing"))
	})
}

func TestQueryDefault(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?limit=5&offset=bad", nil)
	requestVia(t, req, func(c *internal.Context) {
		assert.Equal(t, 5, internal.QueryDefault(c, "limit", 50))
		assert.Equal(t, 10, internal.QueryDefault(c, "offset", 10))
		assert.Equal(t, 50, internal.QueryDefault(c, "missing", 50))
	})
}

func TestValue(t *testing.T) {
	t.Parallel()

	type key struct{}
	requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c *internal.Context) {
		assert.Equal(t, 0, internal.Value[int](c, key{}))
		c.Set(key{}, 42)
		assert.Equal(t, 42, internal.Value[int](c, key{}))
		assert.Equal(t, "", internal.Value[string](c, key{}))
	})
}
