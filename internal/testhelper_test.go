package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sashkashishka/balakanyna-sub000/internal"
	"github.com/sashkashishka/balakanyna-sub000/pkg/config"
)

const testJWTKey = "test-signing-key"

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.JWT.Key = testJWTKey
	cfg.JWT.ExpirationTime = time.Hour
	return &cfg
}

func newTestRouter(t *testing.T, opts ...internal.RouterOption) *internal.Router {
	t.Helper()

	r, err := internal.NewRouter(internal.Deps{Config: testConfig()}, opts...)
	require.NoError(t, err)
	return r
}

// requestVia serves req through a router whose only middleware is fn.
func requestVia(t *testing.T, req *http.Request, fn func(c *internal.Context)) *httptest.ResponseRecorder {
	t.Helper()

	r := newTestRouter(t)
	r.Use(internal.HandlerFunc(func(c *internal.Context) error {
		fn(c)
		return nil
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// fakeCtx is a minimal Routable used to exercise the composer in isolation.
type fakeCtx struct {
	method string
	path   string
	log    *[]string
}

func (f *fakeCtx) Method() string { return f.method }
func (f *fakeCtx) Path() string   { return f.path }

func (f *fakeCtx) record(s string) {
	*f.log = append(*f.log, s)
}

func newFakeCtx(method, path string) *fakeCtx {
	return &fakeCtx{method: method, path: path, log: &[]string{}}
}
