package telemetry

import "github.com/hasirciogluhq/pinguino-chat/internal/metrics"

// PrometheusSink records every event into the package-level Prometheus
// collectors and then forwards to next (typically NoopSink, or a
// ChannelSink if the caller also wants raw events for a future analytics
// consumer).
type PrometheusSink struct {
	next Sink
}

// NewPrometheusSink wraps next with Prometheus recording. A nil next is
// treated as NoopSink.
func NewPrometheusSink(next Sink) *PrometheusSink {
	if next == nil {
		next = NoopSink{}
	}
	return &PrometheusSink{next: next}
}

func (p *PrometheusSink) Publish(m Message) {
	switch m.Kind {
	case KindElapsed:
		metrics.SendLatencyMicros.Observe(float64(m.Micros))
	case KindError:
		if m.ErrType == Lagged {
			metrics.BroadcastLagTotal.Inc()
		}
	case KindInfo:
		metrics.MemUsedMB.Set(float64(m.RAMUsedMB))
		metrics.MemTotalMB.Set(float64(m.RAMTotalMB))
	}
	p.next.Publish(m)
}
