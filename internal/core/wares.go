package core

import (
	"net"

	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
	"github.com/hasirciogluhq/pinguino-chat/internal/state"
)

// StartingTransform turns a raw inbound frame into either a parsed Request
// or a fail-fast Response. Exactly one return value is non-nil.
type StartingTransform interface {
	Transform(cs *state.ConnState, addr net.Addr, raw protocol.Frame) (*protocol.Request, *protocol.Response)
}

// Middleware is dispatched by method (Bind, Handshake, Send) and turns a
// Request into an Outcome.
type Middleware interface {
	Handle(req *protocol.Request, cs *state.ConnState) Outcome
}

// EndingTransform serializes an Outcome to a wire frame, preserving the
// ok/err polarity in its own bool return, and may decorate the outgoing
// frame's tail bytes (the color marker).
type EndingTransform interface {
	Transform(cs *state.ConnState, outcome Outcome) (protocol.Frame, bool)
}

// StartingTransformFunc adapts a function to StartingTransform.
type StartingTransformFunc func(cs *state.ConnState, addr net.Addr, raw protocol.Frame) (*protocol.Request, *protocol.Response)

func (f StartingTransformFunc) Transform(cs *state.ConnState, addr net.Addr, raw protocol.Frame) (*protocol.Request, *protocol.Response) {
	return f(cs, addr, raw)
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(req *protocol.Request, cs *state.ConnState) Outcome

func (f MiddlewareFunc) Handle(req *protocol.Request, cs *state.ConnState) Outcome {
	return f(req, cs)
}

// EndingTransformFunc adapts a function to EndingTransform.
type EndingTransformFunc func(cs *state.ConnState, outcome Outcome) (protocol.Frame, bool)

func (f EndingTransformFunc) Transform(cs *state.ConnState, outcome Outcome) (protocol.Frame, bool) {
	return f(cs, outcome)
}
