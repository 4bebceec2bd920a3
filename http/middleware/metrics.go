package middleware

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts, times and gauges requests passing through, registering its collectors with reg.
//
// Serve reg with MetricsHandler.
func Metrics(reg prometheus.Registerer) Adapter {
	if reg == nil {
		return NoopAdapter
	}

	factory := promauto.With(reg)
	inFlight := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "meadowlark",
		Name:      "http_requests_in_flight",
		Help:      "Requests currently being served.",
	})
	total := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "meadowlark",
		Name:      "http_requests_total",
		Help:      "Requests served, by status code and method.",
	}, []string{"code", "method"})
	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "meadowlark",
		Name:      "http_request_duration_seconds",
		Help:      "Time spent serving requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	return func(h http.Handler) http.Handler {
		return promhttp.InstrumentHandlerInFlight(inFlight,
			promhttp.InstrumentHandlerDuration(duration,
				promhttp.InstrumentHandlerCounter(total, h),
			),
		)
	}
}

// MetricsHandler exposes what g gathers in the Prometheus text format.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
