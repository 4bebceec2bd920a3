package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/meadowlark/http/middleware"
)

func TestMetrics(t *testing.T) {
	// Arrange
	reg := prometheus.NewRegistry()
	h := middleware.Metrics(reg)(teapotHandler())

	for i := 0; i < 2; i++ {
		// Act
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/vacations", nil))
	}

	w := httptest.NewRecorder()
	middleware.MetricsHandler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `meadowlark_http_requests_total{code="418",method="get"} 2`)
	require.Contains(t, w.Body.String(), `meadowlark_http_request_duration_seconds_count{method="get"} 2`)
	require.Contains(t, w.Body.String(), `meadowlark_http_requests_in_flight 0`)
}
