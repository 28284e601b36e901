// Package metrics holds the Prometheus collectors shared by the telemetry
// sink, the connection hooks, and the health server's /metrics route, as a
// small set of package-level promauto collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectionsActive tracks the number of currently open connections.
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pinguino",
		Name:      "connections_active",
		Help:      "Number of currently open client connections.",
	})

	// BroadcastLagTotal counts Lagged telemetry events: a subscriber fell
	// more than the broadcast channel's capacity behind the publisher.
	BroadcastLagTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pinguino",
		Name:      "broadcast_lag_total",
		Help:      "Total number of broadcast lag events across all subscribers.",
	})

	// SendLatencyMicros observes the Elapsed telemetry event duration for
	// each successful Send reply.
	SendLatencyMicros = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pinguino",
		Name:      "send_latency_micros",
		Help:      "Microseconds elapsed producing a successful Send reply.",
		Buckets:   prometheus.ExponentialBuckets(10, 2, 16),
	})

	// MemUsedMB and MemTotalMB mirror the Info telemetry event from the
	// system-metrics sampler.
	MemUsedMB = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pinguino",
		Name:      "mem_used_mb",
		Help:      "Process memory in use, in megabytes, from the last sample.",
	})
	MemTotalMB = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pinguino",
		Name:      "mem_total_mb",
		Help:      "Process memory reserved, in megabytes, from the last sample.",
	})
)
