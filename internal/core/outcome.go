// Package core implements the router, the per-frame dispatcher, the
// pluggable stage interfaces and their default implementations, and the
// per-connection state machine.
package core

import "github.com/hasirciogluhq/pinguino-chat/internal/protocol"

// Outcome is a Response tagged with which branch of the stage pipeline it
// represents. Both branches are valid wire responses; only OK selects the
// normal reply/broadcast path versus the originating-connection-only path.
type Outcome struct {
	Response *protocol.Response
	OK       bool
}
