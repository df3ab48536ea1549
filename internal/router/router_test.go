package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/ward-api/internal/handler"
	shiftHandler "github.com/jwalitptl/ward-api/internal/handler/shift"
	"github.com/jwalitptl/ward-api/internal/middleware"
	"github.com/jwalitptl/ward-api/pkg/logger"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestRouter(t *testing.T) (*Router, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	r := NewRouter(
		handler.NewHandler(okPinger{}, reg),
		logger.NewNop(),
		RouterConfig{
			RateLimitEnabled: true,
			RateLimit:        100,
			RateBurst:        100,
			CORSConfig:       middleware.NewCORSConfig([]string{"https://ward.example"}, true, time.Hour),
			MetricsPrefix:    "test",
			Registerer:       reg,
		},
		shiftHandler.NewHandler(nil),
	)
	r.Setup()
	return r, reg
}

func TestRoutesAndRequestMetrics(t *testing.T) {
	r, reg := newTestRouter(t)

	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.0", w.Header().Get("X-API-Version"))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))

	w = httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/shift/classify", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	n, err := testutil.GatherAndCount(reg, "test_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	w = httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_requests_total")
}
