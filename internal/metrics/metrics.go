// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// a handful of business counters.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellhome_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wellhome_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ordersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wellhome_orders_created_total",
			Help: "Total number of orders created",
		},
	)

	voucherValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellhome_voucher_validations_total",
			Help: "Total number of voucher validation attempts",
		},
		[]string{"outcome"},
	)
)

// RecordOrderCreated increments the orders-created counter.
func RecordOrderCreated() {
	ordersCreatedTotal.Inc()
}

// RecordVoucherValidation records one voucher validation attempt.
func RecordVoucherValidation(outcome string) {
	voucherValidationsTotal.WithLabelValues(outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument records request count and latency per route. routePattern must
// return the matched route template, not the raw URL, to keep cardinality
// bounded.
func Instrument(routePattern func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			path := routePattern(r)
			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}
