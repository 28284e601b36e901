package core

import (
	"net"

	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
	"github.com/hasirciogluhq/pinguino-chat/internal/state"
)

// Phase is the connection's tagged state, an explicit enum rather than a
// bundle of booleans threaded through the dispatcher.
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseSubscribed
)

// RouteTag classifies a dispatch outcome so the connection loop knows
// which next action to take: reply, promote, broadcast, or close.
type RouteTag int

const (
	RouteUnclassified RouteTag = iota
	RouteBind
	RouteHandshake
	RouteSend
)

// RouteResult is the tagged Result<RawFrame> the outer connection loop
// interprets.
type RouteResult struct {
	Tag   RouteTag
	Frame protocol.Frame
	OK    bool
}

// Routes bundles one active implementation of each pluggable stage per
// method. The zero value is not ready for use; construct with
// DefaultRoutes().
type Routes struct {
	Starting StartingTransform

	Bind      Middleware
	Handshake Middleware
	Send      Middleware

	BindEnding      EndingTransform
	HandshakeEnding EndingTransform
	// SendEnding also serves as the catch-all ending transform for
	// StartingTransform-level failures, where no method is known yet.
	SendEnding EndingTransform
}

// DefaultRoutes wires the default stage implementations.
func DefaultRoutes() Routes {
	return Routes{
		Starting:        DefaultStartingTransform{},
		Bind:            DefaultBindMiddleware{},
		Handshake:       DefaultHandshakeMiddleware{},
		Send:            DefaultSendMiddleware{},
		BindEnding:      DefaultBindEndingTransform{},
		HandshakeEnding: DefaultHandshakeEndingTransform{},
		SendEnding:      DefaultSendEndingTransform{},
	}
}

// Dispatch runs StartingTransform, dispatches to the method's Middleware,
// then the method's EndingTransform, applying the Initial/Subscribed
// special-case short circuits (Send while Initial, Bind/Handshake while
// already Subscribed).
func (r Routes) Dispatch(cs *state.ConnState, addr net.Addr, raw protocol.Frame, phase Phase) RouteResult {
	req, errResp := r.Starting.Transform(cs, addr, raw)
	if errResp != nil {
		frame, ok := r.SendEnding.Transform(cs, Outcome{Response: errResp, OK: false})
		return RouteResult{Tag: RouteUnclassified, Frame: frame, OK: ok}
	}

	if phase == PhaseInitial && req.Method == protocol.Send {
		resp, _ := protocol.NewResponseBuilder().Code(protocol.CodeUnauthorized).Build()
		frame, ok := r.SendEnding.Transform(cs, Outcome{Response: resp, OK: false})
		return RouteResult{Tag: RouteSend, Frame: frame, OK: ok}
	}

	if phase == PhaseSubscribed && (req.Method == protocol.Bind || req.Method == protocol.Handshake) {
		resp, _ := protocol.NewResponseBuilder().Code(protocol.CodeError).Build()
		if req.Method == protocol.Handshake {
			frame, ok := r.HandshakeEnding.Transform(cs, Outcome{Response: resp, OK: false})
			return RouteResult{Tag: RouteHandshake, Frame: frame, OK: ok}
		}
		frame, ok := r.BindEnding.Transform(cs, Outcome{Response: resp, OK: false})
		return RouteResult{Tag: RouteBind, Frame: frame, OK: ok}
	}

	switch req.Method {
	case protocol.Bind:
		outcome := r.Bind.Handle(req, cs)
		frame, ok := r.BindEnding.Transform(cs, outcome)
		return RouteResult{Tag: RouteBind, Frame: frame, OK: ok}
	case protocol.Handshake:
		outcome := r.Handshake.Handle(req, cs)
		frame, ok := r.HandshakeEnding.Transform(cs, outcome)
		return RouteResult{Tag: RouteHandshake, Frame: frame, OK: ok}
	default: // protocol.Send
		outcome := r.Send.Handle(req, cs)
		frame, ok := r.SendEnding.Transform(cs, outcome)
		return RouteResult{Tag: RouteSend, Frame: frame, OK: ok}
	}
}
