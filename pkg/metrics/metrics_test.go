package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sashkashishka/balakanyna-sub000/pkg/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestBegin(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	done := m.Begin(http.MethodPost)
	done("/echo", http.StatusCreated)
	m.Begin(http.MethodGet)("/missing", http.StatusNotFound)

	body := scrape(t, m)
	assert.Contains(t, body, `balakanyna_http_requests_total{method="POST",route="/echo",status="2xx"} 1`)
	assert.Contains(t, body, `balakanyna_http_requests_total{method="GET",route="/missing",status="4xx"} 1`)
	assert.Contains(t, body, `balakanyna_http_requests_in_flight 0`)
	assert.Contains(t, body, "balakanyna_http_request_duration_seconds_bucket")
}

func TestCacheCounters(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()

	body := scrape(t, m)
	assert.Contains(t, body, `balakanyna_cache_lookups_total{result="hit"} 2`)
	assert.Contains(t, body, `balakanyna_cache_lookups_total{result="miss"} 1`)
}

func TestIndependentRegistries(t *testing.T) {
	t.Parallel()

	a, b := metrics.New(), metrics.New()
	a.CacheHit()
	assert.False(t, strings.Contains(scrape(t, b), `result="hit"`))
}
