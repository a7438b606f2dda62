package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sashkashishka/balakanyna-sub000/internal"
	"github.com/sashkashishka/balakanyna-sub000/pkg/config"
)

const testJWTKey = "middleware-test-key"

// syncBuffer guards log output written from request goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newRouter(t *testing.T, logs *syncBuffer) *internal.Router {
	t.Helper()

	cfg := config.Defaults()
	cfg.JWT.Key = testJWTKey
	cfg.JWT.ExpirationTime = time.Hour

	deps := internal.Deps{Config: &cfg}
	if logs != nil {
		deps.Logger = slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	r, err := internal.NewRouter(deps)
	require.NoError(t, err)
	return r
}

func serve(r *internal.Router, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ok(c *internal.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
