package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "checkout_total",
		Help:      "Checkout attempts partitioned by outcome.",
	}, []string{"status"})

	PaymentRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "payment_recorded_total",
		Help:      "Debt payments recorded against customer accounts.",
	})

	ScanResolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "scan_resolved_total",
		Help:      "Scan-code resolutions partitioned by outcome.",
	}, []string{"outcome"})
)
