package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sashkashishka/balakanyna-sub000/internal"
)

func TestExtractor(t *testing.T) {
	t.Parallel()

	t.Run("empty sources returns false", func(t *testing.T) {
		t.Parallel()

		ext := internal.NewExtractor()
		requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c *internal.Context) {
			v, ok := ext.Extract(c)
			require.False(t, ok)
			require.Empty(t, v)
		})
	})

	t.Run("first source wins", func(t *testing.T) {
		t.Parallel()

		ext := internal.NewExtractor(
			internal.FromHeader("X-First"),
			internal.FromHeader("X-Second"),
		)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-First", "first-val")
		req.Header.Set("X-Second", "second-val")

		requestVia(t, req, func(c *internal.Context) {
			v, ok := ext.Extract(c)
			require.True(t, ok)
			require.Equal(t, "first-val", v)
		})
	})

	t.Run("falls through to later sources", func(t *testing.T) {
		t.Parallel()

		ext := internal.NewExtractor(
			internal.FromCookie("token"),
			internal.FromQuery("token"),
			internal.FromBearerToken(),
		)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc.def")

		requestVia(t, req, func(c *internal.Context) {
			v, ok := ext.Extract(c)
			require.True(t, ok)
			require.Equal(t, "abc.def", v)
		})
	})
}

func TestFromCookie(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "token=abc; other=1")

	requestVia(t, req, func(c *internal.Context) {
		v, ok := internal.FromCookie("token")(c)
		require.True(t, ok)
		require.Equal(t, "abc", v)

		_, ok = internal.FromCookie("missing")(c)
		require.False(t, ok)
	})
}

func TestFromQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?hash=ABCD1234", nil)
	requestVia(t, req, func(c *internal.Context) {
		v, ok := internal.FromQuery("hash")(c)
		require.True(t, ok)
		require.Equal(t, "ABCD1234", v)
	})
}

func TestFromBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer tok", "tok", true},
		{"lowercase scheme", "bearer tok", "tok", true},
		{"missing token", "Bearer ", "", false},
		{"basic scheme", "Basic dXNlcg==", "", false},
		{"no header", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			requestVia(t, req, func(c *internal.Context) {
				v, ok := internal.FromBearerToken()(c)
				require.Equal(t, tt.ok, ok)
				require.Equal(t, tt.want, v)
			})
		})
	}
}
