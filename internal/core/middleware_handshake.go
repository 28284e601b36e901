package core

import (
	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
	"github.com/hasirciogluhq/pinguino-chat/internal/state"
)

// DefaultHandshakeMiddleware resolves the presented token against
// AppState's auth table; on success it binds the resolved name onto the
// connection.
type DefaultHandshakeMiddleware struct{}

func (DefaultHandshakeMiddleware) Handle(req *protocol.Request, cs *state.ConnState) Outcome {
	name, ok := cs.App.Lookup(req.Value)
	if !ok {
		resp, _ := protocol.NewResponseBuilder().Code(protocol.CodeUnauthorized).Build()
		return Outcome{Response: resp, OK: false}
	}
	cs.BindUser(name)
	resp, _ := protocol.NewResponseBuilder().Code(protocol.CodeAuthOK).Build()
	return Outcome{Response: resp, OK: true}
}
