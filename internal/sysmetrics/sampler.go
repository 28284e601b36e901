// Package sysmetrics implements a periodic system-metrics sampler that
// emits Info telemetry events. It stays out of the request-processing
// core and is wired in only by the command-line entrypoint.
package sysmetrics

import (
	"context"
	"runtime"
	"time"

	"github.com/hasirciogluhq/pinguino-chat/internal/telemetry"
	"github.com/sirupsen/logrus"
)

// Sampler periodically reports process memory usage to a telemetry.Sink,
// using runtime.MemStats.
type Sampler struct {
	Sink     telemetry.Sink
	Interval time.Duration
	Log      logrus.FieldLogger
}

// NewSampler returns a Sampler with a 5s default sampling interval.
func NewSampler(sink telemetry.Sink, log logrus.FieldLogger) *Sampler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Sampler{Sink: sink, Interval: 5 * time.Second, Log: log}
}

// Run samples until ctx is cancelled.
func (s *Sampler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			s.sampleOnce(now)
		}
	}
}

func (s *Sampler) sampleOnce(now time.Time) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	usedMB := ms.Alloc / (1024 * 1024)
	totalMB := ms.Sys / (1024 * 1024)

	s.Sink.Publish(telemetry.Info(now, usedMB, totalMB))
	s.Log.WithFields(logrus.Fields{"mem_used_mb": usedMB, "mem_total_mb": totalMB}).Debug("system metrics sampled")
}
