package internal_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sashkashishka/balakanyna-sub000/internal"
)

func TestContext_JSON(t *testing.T) {
	t.Parallel()

	t.Run("writes status header and body", func(t *testing.T) {
		t.Parallel()

		w := requestVia(t, httptest.NewRequest(http.MethodPost, "/", nil), func(c *internal.Context) {
			require.NoError(t, c.JSON(http.StatusCreated, map[string]int{"id": 1}))
			assert.True(t, c.Written())
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"id":1}`, w.Body.String())
	})

	t.Run("serialization failure leaves response untouched", func(t *testing.T) {
		t.Parallel()

		requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c *internal.Context) {
			err := c.JSON(http.StatusOK, map[string]any{"ch": make(chan int)})
			require.Error(t, err)
			require.ErrorIs(t, err, internal.ErrFailedSerialization)

			httpErr := internal.AsHTTPError(err)
			require.NotNil(t, httpErr)
			assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode())
			assert.Equal(t, internal.CodeFailedSerialization, httpErr.ErrorCode)
			assert.False(t, c.Written())
		})
	})
}

func TestContext_Throw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		status   int
		envelope string
	}{
		{
			name:     "http error",
			err:      internal.ErrNotFound("task not found", internal.WithErrorCode("TASK_NOT_FOUND")),
			status:   http.StatusNotFound,
			envelope: `{"error":"TASK_NOT_FOUND","message":"task not found"}`,
		},
		{
			name:     "default code from status",
			err:      internal.ErrBadRequest("bad id"),
			status:   http.StatusBadRequest,
			envelope: `{"error":"BAD_REQUEST","message":"bad id"}`,
		},
		{
			name:     "wrapped http error",
			err:      errors.Join(errors.New("ctx"), internal.ErrUnauthorized("nope")),
			status:   http.StatusUnauthorized,
			envelope: `{"error":"UNAUTHORIZED","message":"nope"}`,
		},
		{
			name:     "unknown error",
			err:      errors.New("db exploded"),
			status:   http.StatusInternalServerError,
			envelope: `{"error":"Unknown","message":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c *internal.Context) {
				require.NoError(t, c.Throw(tt.err))
			})
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.envelope, w.Body.String())
		})
	}
}

func TestContext_Bind(t *testing.T) {
	t.Parallel()

	type body struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"quiz"}`))
		requestVia(t, req, func(c *internal.Context) {
			var b body
			require.NoError(t, c.Bind(&b))
			assert.Equal(t, "quiz", b.Name)
		})
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nope":1}`))
		requestVia(t, req, func(c *internal.Context) {
			var b body
			err := c.Bind(&b)
			httpErr := internal.AsHTTPError(err)
			require.NotNil(t, httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
			assert.Equal(t, internal.CodeInvalidBody, httpErr.ErrorCode)
		})
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{`{"name":"quiz"} garbage`, `{"name":"quiz"}{"name":"x"}`, `{"name":"quiz"}}`} {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
			requestVia(t, req, func(c *internal.Context) {
				var b body
				err := c.Bind(&b)
				require.ErrorIs(t, err, internal.ErrTrailingData, raw)
				httpErr := internal.AsHTTPError(err)
				require.NotNil(t, httpErr)
				assert.Equal(t, http.StatusBadRequest, httpErr.Code)
				assert.Equal(t, internal.CodeInvalidBody, httpErr.ErrorCode)
			})
		}
	})

	t.Run("trailing whitespace", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{\"name\":\"quiz\"}\n  \n"))
		requestVia(t, req, func(c *internal.Context) {
			var b body
			require.NoError(t, c.Bind(&b))
			assert.Equal(t, "quiz", b.Name)
		})
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		requestVia(t, req, func(c *internal.Context) {
			var b body
			err := c.Bind(&b)
			require.Error(t, err)
			assert.Equal(t, "request body is empty", err.Error())
		})
	})
}

func TestContext_Accessors(t *testing.T) {
	t.Parallel()

	type key struct{}

	req := httptest.NewRequest(http.MethodGet, "/api/task?hash=ABC&x=1", nil)
	req.Header.Set("X-Custom", "v")
	req.Header.Set(internal.RequestIDHeader, "req-42")

	w := requestVia(t, req, func(c *internal.Context) {
		assert.Equal(t, http.MethodGet, c.Method())
		assert.Equal(t, "/api/task", c.Path())
		assert.Equal(t, "ABC", c.Query("hash"))
		assert.Equal(t, "v", c.Header("X-Custom"))
		assert.Equal(t, "req-42", c.ID())
		assert.NotNil(t, c.Logger())
		assert.NotNil(t, c.Config())
		assert.Nil(t, c.Store())

		assert.Nil(t, c.Get(key{}))
		c.Set(key{}, "value")
		assert.Equal(t, "value", c.Get(key{}))
		assert.Equal(t, "value", c.Context().Value(key{}))
	})
	assert.Equal(t, "req-42", w.Header().Get(internal.RequestIDHeader))
}

func TestContext_GeneratedID(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, internal.WithIDGenerator(func() string { return "fixed-id" }))
	var got string
	r.Use(internal.HandlerFunc(func(c *internal.Context) error {
		got = c.ID()
		return c.NoContent(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "fixed-id", got)
	assert.Equal(t, "fixed-id", w.Header().Get(internal.RequestIDHeader))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestErrorResponse_Shape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(internal.ErrorResponse{Error: "E", Message: "m"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"E","message":"m"}`, string(data))
}
