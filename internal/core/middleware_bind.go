package core

import (
	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
	"github.com/hasirciogluhq/pinguino-chat/internal/state"
)

// DefaultBindMiddleware registers the candidate name atomically: AuthOK
// with a fresh token on success, AlreadyTaken otherwise.
type DefaultBindMiddleware struct{}

func (DefaultBindMiddleware) Handle(req *protocol.Request, cs *state.ConnState) Outcome {
	token, ok := cs.App.Register(req.Value)
	if !ok {
		resp, _ := protocol.NewResponseBuilder().Code(protocol.CodeAlreadyTaken).Build()
		return Outcome{Response: resp, OK: false}
	}
	resp, _ := protocol.NewResponseBuilder().Code(protocol.CodeAuthOK).Token(token).Build()
	return Outcome{Response: resp, OK: true}
}
