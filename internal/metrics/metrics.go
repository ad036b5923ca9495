// Package metrics exposes Prometheus instrumentation for backend calls and
// checkout outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_backend_requests_total",
			Help: "Total number of requests to the store backend",
		},
		[]string{"endpoint", "outcome"},
	)

	backendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_backend_request_duration_seconds",
			Help:    "Duration of requests to the store backend",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "outcome"},
	)

	checkoutSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_checkout_steps_total",
			Help: "Checkout pipeline steps by result",
		},
		[]string{"step", "status"},
	)
)

// ObserveBackendRequest records one round trip to the backend.
func ObserveBackendRequest(endpoint string, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	backendRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	backendRequestDuration.WithLabelValues(endpoint, outcome).Observe(elapsed.Seconds())
}

// RecordCheckoutStep records the result of one checkout pipeline step
// (initiate_payment, confirm_payment, save_order).
func RecordCheckoutStep(step string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	checkoutSteps.WithLabelValues(step, status).Inc()
}
