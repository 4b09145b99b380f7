package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	BillsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bills_created_total",
		Help: "Bills persisted since process start",
	})

	ExchangesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchanges_created_total",
		Help: "Exchange calculations persisted since process start",
	})

	BillNumberRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bill_number_retries_total",
		Help: "Bill number collisions that triggered a regenerate",
	})

	BillNumberFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bill_number_fallbacks_total",
		Help: "Bills issued with a timestamp fallback number",
	})

	ExchangeNumberRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchange_number_retries_total",
		Help: "Exchange number collisions that triggered a regenerate",
	})

	ExchangeNumberFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchange_number_fallbacks_total",
		Help: "Exchanges issued with a timestamp fallback number",
	})
)
