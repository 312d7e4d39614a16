package services

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service is the interface that services have to implement
// to be loaded by the Server.
type Service interface {
	Name() string
	BaseURL() string
	Endpoints() map[string]map[string]http.HandlerFunc
}

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "davboxd_http_requests_total",
		Help: "Number of HTTP requests processed, partitioned by endpoint, method and status code.",
	}, []string{"handler", "method", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "davboxd_http_request_duration_seconds",
		Help:    "Duration of HTTP requests, partitioned by endpoint.",
		Buckets: prometheus.DefBuckets,
	}, []string{"handler"})
)

// Instrument wraps an endpoint handler with request counting and latency
// observation under the given endpoint name.
func Instrument(name string, handler http.HandlerFunc) http.HandlerFunc {
	labels := prometheus.Labels{"handler": name}
	wrapped := promhttp.InstrumentHandlerDuration(requestDuration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(requestsTotal.MustCurryWith(labels), handler))
	return wrapped.ServeHTTP
}

// MetricsHandler exposes the prometheus registry. Every service mounts it
// under its own /metrics endpoint.
func MetricsHandler() http.HandlerFunc {
	return promhttp.Handler().ServeHTTP
}
