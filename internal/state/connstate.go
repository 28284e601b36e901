package state

import (
	"sync"

	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
)

// AfterHook runs exactly once, after a connection's task exits, regardless
// of how it exited.
type AfterHook interface {
	Execute(cs *ConnState)
}

// BeforeHook runs exactly once, right after accept, before the first frame
// is read. It cannot reject the connection.
type BeforeHook interface {
	Execute(cs *ConnState)
}

// AfterHookFunc adapts a plain function to AfterHook.
type AfterHookFunc func(cs *ConnState)

func (f AfterHookFunc) Execute(cs *ConnState) { f(cs) }

// BeforeHookFunc adapts a plain function to BeforeHook.
type BeforeHookFunc func(cs *ConnState)

func (f BeforeHookFunc) Execute(cs *ConnState) { f(cs) }

// ConnState is per-connection state, live for the duration of one TCP
// connection. The per-connection lock protects Varmap only; in practice at
// most one reader/writer task touches it at a time (the inbound loop), but
// it is held for bounded critical sections and always released before any
// network I/O, per the concurrency model.
type ConnState struct {
	App   *AppState
	After AfterHook

	mu     sync.Mutex
	varmap protocol.Varmap
}

// NewConnState constructs a fresh ConnState for an accepted connection.
func NewConnState(app *AppState, after AfterHook) *ConnState {
	return &ConnState{App: app, After: after, varmap: protocol.NewVarmap()}
}

// InsertVar attaches v to the connection's Varmap.
func (cs *ConnState) InsertVar(v any) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.varmap.Insert(v)
}

// VarmapSnapshot returns a clone of the connection's current Varmap,
// suitable for attaching to a Request/Response as stages run.
func (cs *ConnState) VarmapSnapshot() protocol.Varmap {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.varmap.Clone()
}

// BoundUser returns the name negotiated by a prior successful Handshake,
// if any.
func (cs *ConnState) BoundUser() (string, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	name, ok := protocol.Get[protocol.UserName](cs.varmap)
	return string(name), ok
}

// BindUser records the name negotiated by a successful Handshake.
func (cs *ConnState) BindUser(name string) {
	cs.InsertVar(protocol.UserName(name))
}
