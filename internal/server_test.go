package internal_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sashkashishka/balakanyna-sub000/internal"
	"github.com/sashkashishka/balakanyna-sub000/pkg/config"
	"github.com/sashkashishka/balakanyna-sub000/pkg/health"
)

type fakeStore struct {
	mu     sync.Mutex
	closed int
	order  *[]string
}

func (s *fakeStore) Ping(context.Context) error { return nil }

func (s *fakeStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	if s.order != nil {
		*s.order = append(*s.order, "store")
	}
}

func serverConfig(closeTimeout time.Duration) internal.ServerConfig {
	return internal.ServerConfig{
		Port: 0,
		Timeouts: config.Timeouts{
			Connection: time.Minute,
			Request:    5 * time.Second,
			Close:      closeTimeout,
		},
	}
}

func startServer(t *testing.T, s *internal.Server) string {
	t.Helper()

	require.NoError(t, s.Listen())
	_, port, err := net.SplitHostPort(s.Addr())
	require.NoError(t, err)
	return "http://127.0.0.1:" + port
}

func TestServer_ServesRouter(t *testing.T) {
	t.Parallel()

	s := internal.NewServer(serverConfig(time.Second), echoRouter(t))
	base := startServer(t, s)
	t.Cleanup(func() { _ = s.Destroy(context.Background(), nil) })

	resp, err := http.Post(base+"/echo", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.NotEmpty(t, resp.Header.Get(internal.RequestIDHeader))
}

func TestServer_ListenTwice(t *testing.T) {
	t.Parallel()

	s := internal.NewServer(serverConfig(time.Second), echoRouter(t))
	startServer(t, s)
	t.Cleanup(func() { _ = s.Destroy(context.Background(), nil) })

	require.ErrorIs(t, s.Listen(), internal.ErrServerAlreadyRunning)
}

func TestServer_DestroyNotStarted(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	s := internal.NewServer(serverConfig(time.Second), echoRouter(t), internal.WithStore(store))

	require.NoError(t, s.Destroy(context.Background(), syscall.SIGTERM))
	assert.Equal(t, 1, store.closed)
	assert.Empty(t, s.Addr())
}

func TestServer_DestroyOrderAndIdempotence(t *testing.T) {
	t.Parallel()

	var order []string
	store := &fakeStore{order: &order}
	s := internal.NewServer(serverConfig(time.Second), echoRouter(t),
		internal.WithStore(store),
		internal.WithCloser("redis", func(context.Context) error {
			order = append(order, "redis")
			return nil
		}),
		internal.WithLoggerFlush(func(context.Context) error {
			order = append(order, "flush")
			return nil
		}),
	)
	startServer(t, s)

	require.NoError(t, s.Destroy(context.Background(), syscall.SIGINT))
	require.NoError(t, s.Destroy(context.Background(), syscall.SIGINT))

	assert.Equal(t, []string{"store", "redis", "flush"}, order)
	assert.Equal(t, 1, store.closed)
	assert.Equal(t, int32(0), s.ForcedCloses())
}

func TestServer_DestroyReportsCloserErrors(t *testing.T) {
	t.Parallel()

	want := errors.New("close failed")
	flushed := false
	s := internal.NewServer(serverConfig(time.Second), echoRouter(t),
		internal.WithCloser("broken", func(context.Context) error { return want }),
		internal.WithLoggerFlush(func(context.Context) error {
			flushed = true
			return nil
		}),
	)

	err := s.Destroy(context.Background(), nil)
	require.ErrorIs(t, err, want)
	assert.True(t, flushed)
}

func blockingRouter(t *testing.T, hold time.Duration, entered chan<- struct{}) *internal.Router {
	t.Helper()

	r := newTestRouter(t)
	r.Use(internal.HandlerFunc(func(c *internal.Context) error {
		close(entered)
		select {
		case <-time.After(hold):
		case <-c.Context().Done():
		}
		return c.NoContent(http.StatusNoContent)
	}))
	return r
}

func TestServer_DestroyWaitsForShortRequest(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	s := internal.NewServer(serverConfig(2*time.Second), blockingRouter(t, 100*time.Millisecond, entered))
	base := startServer(t, s)

	done := make(chan int, 1)
	go func() {
		resp, err := http.Get(base + "/")
		if err != nil {
			done <- 0
			return
		}
		resp.Body.Close()
		done <- resp.StatusCode
	}()

	<-entered
	require.NoError(t, s.Destroy(context.Background(), syscall.SIGTERM))
	assert.Equal(t, http.StatusNoContent, <-done)
	assert.Equal(t, int32(0), s.ForcedCloses())
}

func TestServer_DestroyForcesLongRequest(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	s := internal.NewServer(serverConfig(50*time.Millisecond), blockingRouter(t, 10*time.Second, entered))
	base := startServer(t, s)

	done := make(chan error, 1)
	go func() {
		resp, err := http.Get(base + "/")
		if err == nil {
			resp.Body.Close()
		}
		done <- err
	}()

	<-entered
	start := time.Now()
	require.NoError(t, s.Destroy(context.Background(), syscall.SIGTERM))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, int32(1), s.ForcedCloses())
	assert.Error(t, <-done)
}

func TestServer_OpsRoutes(t *testing.T) {
	t.Parallel()

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "metrics")
	})
	s := internal.NewServer(serverConfig(time.Second), echoRouter(t),
		internal.WithHealthChecks(health.Checks{
			"store": func(context.Context) error { return nil },
		}),
		internal.WithOpsHandler("/metrics", metrics),
	)
	base := startServer(t, s)
	t.Cleanup(func() { _ = s.Destroy(context.Background(), nil) })

	get := func(path string) (int, string) {
		resp, err := http.Get(base + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	status, body := get("/health/live")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"healthy"}`, body)

	status, body = get("/health/ready")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"healthy","checks":{"store":{"status":"healthy"}}}`, body)

	status, body = get("/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "metrics", body)

	status, _ = get("/unknown")
	assert.Equal(t, http.StatusNotFound, status)

	resp, err := http.Post(base+"/echo", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
