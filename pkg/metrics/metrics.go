// Package metrics exposes Prometheus collectors for the resolver and dispatcher.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// repliesTotal counts replies by the resolution stage that produced them.
	// Labels: stage (tool_call, recovered, cuisine, booking, text, fallback, ...)
	repliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dinebot",
		Subsystem: "resolver",
		Name:      "replies_total",
		Help:      "Replies produced, by resolution stage",
	}, []string{"stage"})

	// dispatchTotal counts tool dispatches by tool and outcome.
	// Labels: tool, outcome (ok or a dispatch error kind)
	dispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dinebot",
		Subsystem: "tools",
		Name:      "dispatch_total",
		Help:      "Tool dispatches, by tool and outcome",
	}, []string{"tool", "outcome"})

	// modelLatencySeconds measures upstream model round trips.
	modelLatencySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dinebot",
		Subsystem: "model",
		Name:      "latency_seconds",
		Help:      "Upstream model call latency",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"provider", "status"})
)

// RecordReply records which stage of the resolution chain answered a turn.
func RecordReply(stage string) {
	repliesTotal.WithLabelValues(stage).Inc()
}

// RecordDispatch records a tool dispatch outcome. Callers should pass a
// known tool name or "unknown" to keep label cardinality bounded.
func RecordDispatch(tool, outcome string) {
	dispatchTotal.WithLabelValues(tool, outcome).Inc()
}

// RecordModelCall records an upstream model call.
func RecordModelCall(provider string, ok bool, durationSec float64) {
	status := "ok"
	if !ok {
		status = "error"
	}
	modelLatencySeconds.WithLabelValues(provider, status).Observe(durationSec)
}
