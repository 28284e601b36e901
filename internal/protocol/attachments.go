package protocol

import "time"

// The following named types exist purely so that Varmap's per-type
// uniqueness invariant ("at most one value per type") distinguishes each
// kind of attachment from an incidental plain string/time.Time a stage
// might otherwise store. Each wraps a primitive with no added behavior.

// UserName is the negotiated user name attached to a connection's Varmap
// by the Handshake middleware, read back by Send.
type UserName string

// ArrivalTime is the timestamp a StartingTransform may attach to a
// Request's Varmap to record when the frame was read.
type ArrivalTime time.Time

// TaskID identifies the connection task for telemetry events.
type TaskID string
