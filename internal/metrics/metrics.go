// Package metrics exposes Prometheus instrumentation for the API server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rooherbals_http_requests_total",
		Help: "HTTP requests by route pattern, method, and status.",
	}, []string{"route", "method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rooherbals_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	paymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rooherbals_payments_recorded_total",
		Help: "Payments recorded, by method.",
	}, []string{"method"})

	overpaymentWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rooherbals_overpayment_warnings_total",
		Help: "Payment submissions that tripped the overpayment guard.",
	})
)

// RecordPayment counts a successfully recorded payment.
func RecordPayment(method string) {
	paymentsRecorded.WithLabelValues(method).Inc()
}

// RecordOverpaymentWarning counts a submission rejected pending overpay
// confirmation.
func RecordOverpaymentWarning() {
	overpaymentWarnings.Inc()
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument is chi middleware recording request counts and latency.
// The route pattern (not the raw path) labels the series so per-customer
// URLs do not explode cardinality.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
