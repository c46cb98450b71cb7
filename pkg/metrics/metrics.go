package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts handled HTTP requests by route, method and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grocery",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests processed, by route, method and status.",
	}, []string{"route", "method", "status"})

	// RequestDuration observes request latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "grocery",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// TxConflicts counts optimistic transactions aborted because a watched
	// key changed before commit. These surface to clients as transient
	// errors; a rising rate means hot keys.
	TxConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "grocery",
		Subsystem: "kv",
		Name:      "tx_conflicts_total",
		Help:      "Optimistic transactions aborted by a watched-key conflict.",
	})
)
