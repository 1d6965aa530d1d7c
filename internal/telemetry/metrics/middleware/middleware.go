package middleware

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Middleware instruments http handlers with request count and duration
// metrics, labeled per handler.
type Middleware struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the instrumentation metrics on the given registerer. A nil
// buckets slice falls back to the prometheus defaults.
func New(registerer prometheus.Registerer, buckets []float64) *Middleware {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}

	factory := promauto.With(registerer)
	return &Middleware{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "handler_requests_total",
				Help: "Total number of requests served, per handler.",
			},
			[]string{"handler", "code", "method"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "handler_request_duration_seconds",
				Help:    "Request duration in seconds, per handler.",
				Buckets: buckets,
			},
			[]string{"handler", "method"},
		),
	}
}

// WrapHandler returns the given handler instrumented with request count and
// duration metrics, labeled with handlerID.
func (m *Middleware) WrapHandler(handlerID string, handler http.Handler) http.Handler {
	handlerLabel := prometheus.Labels{"handler": handlerID}
	return promhttp.InstrumentHandlerCounter(
		m.requestsTotal.MustCurryWith(handlerLabel),
		promhttp.InstrumentHandlerDuration(
			m.requestDuration.MustCurryWith(handlerLabel),
			handler,
		),
	)
}
