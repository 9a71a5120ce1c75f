package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		OrderCreateRequests,
		GatewayOrderDuration,
	)
}

var (
	// Count of order-creation calls grouped by result and bounded reason.
	// result: ok|fail
	// reason (fail only): bad_json|invalid_plan|gateway_error|unknown
	OrderCreateRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_create_requests_total",
			Help: "Count of /create-order calls by result and reason.",
		},
		[]string{"result", "reason"},
	)

	// Latency of the external gateway order call grouped by result.
	GatewayOrderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_order_duration_seconds",
			Help:    "Duration of payment gateway order creation in seconds.",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"result"},
	)
)
