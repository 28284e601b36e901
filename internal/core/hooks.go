package core

import (
	"github.com/hasirciogluhq/pinguino-chat/internal/metrics"
	"github.com/hasirciogluhq/pinguino-chat/internal/state"
)

// defaultBeforeHook and defaultAfterHook track the number of active
// connections as a Prometheus gauge.
func defaultBeforeHook() state.BeforeHook {
	return state.BeforeHookFunc(func(cs *state.ConnState) {
		metrics.ConnectionsActive.Inc()
	})
}

func defaultAfterHook() state.AfterHook {
	return state.AfterHookFunc(func(cs *state.ConnState) {
		metrics.ConnectionsActive.Dec()
	})
}
