package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ordersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vendora",
		Name:      "orders_created_total",
		Help:      "Total number of orders created through checkout.",
	})
	checkoutFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vendora",
		Name:      "checkout_failures_total",
		Help:      "Checkout attempts that did not produce an order.",
	}, []string{"reason"})
	checkoutDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vendora",
		Name:      "checkout_duration_seconds",
		Help:      "Wall time of the checkout transaction.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})
	paymentsVerified = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vendora",
		Name:      "payments_verified_total",
		Help:      "Gateway signature verification outcomes.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(ordersCreated, checkoutFailures, checkoutDuration, paymentsVerified)
}

// ObserveCheckout records one checkout attempt.
func ObserveCheckout(seconds float64, ok bool, reason string) {
	checkoutDuration.Observe(seconds)
	if ok {
		ordersCreated.Inc()
		return
	}
	checkoutFailures.WithLabelValues(reason).Inc()
}

// ObservePaymentVerification records a gateway signature check.
func ObservePaymentVerification(ok bool) {
	outcome := "valid"
	if !ok {
		outcome = "invalid"
	}
	paymentsVerified.WithLabelValues(outcome).Inc()
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
