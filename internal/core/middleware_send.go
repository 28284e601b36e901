package core

import (
	"time"

	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
	"github.com/hasirciogluhq/pinguino-chat/internal/state"
)

// DefaultSendMiddleware requires a name bound by a prior Handshake, then
// builds an OK response carrying the user, message, and a UTC timestamp.
// A color attached to the request (by StartingTransform) is carried
// forward onto the response's Varmap so the matching EndingTransform can
// re-stamp the outgoing frame's tail. If the built response would not fit
// in a single frame, the outcome is downgraded to ParseError rather than
// propagating a fatal failure.
type DefaultSendMiddleware struct{}

func (DefaultSendMiddleware) Handle(req *protocol.Request, cs *state.ConnState) Outcome {
	name, ok := cs.BoundUser()
	if !ok {
		resp, _ := protocol.NewResponseBuilder().Code(protocol.CodeInvalidName).Build()
		return Outcome{Response: resp, OK: false}
	}

	resp, err := protocol.NewResponseBuilder().
		Code(protocol.CodeOK).
		User(name).
		Message(req.Value).
		Time(time.Now()).
		Build()
	if err != nil {
		fallback, _ := protocol.NewResponseBuilder().Code(protocol.CodeParseError).Build()
		return Outcome{Response: fallback, OK: false}
	}

	if color, ok := protocol.Get[protocol.Color](req.Varmap); ok {
		resp.Varmap.Insert(color)
	}

	if _, serErr := resp.AsFrame(); serErr != nil {
		fallback, _ := protocol.NewResponseBuilder().Code(protocol.CodeParseError).Build()
		return Outcome{Response: fallback, OK: false}
	}

	return Outcome{Response: resp, OK: true}
}
