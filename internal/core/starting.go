package core

import (
	"net"
	"time"

	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
	"github.com/hasirciogluhq/pinguino-chat/internal/state"
)

// DefaultStartingTransform extracts and strips the optional color tail,
// parses the remaining text into a Request, and attaches the arrival time
// and (if present) the color to the Request's Varmap.
type DefaultStartingTransform struct{}

func (DefaultStartingTransform) Transform(cs *state.ConnState, addr net.Addr, raw protocol.Frame) (*protocol.Request, *protocol.Response) {
	stripped, color, hasColor := protocol.ExtractColor(raw)

	req, perr := protocol.ParseRequest(addr, stripped)
	if perr != nil {
		resp, _ := protocol.NewResponseBuilder().Code(mapParseError(perr.Kind)).Build()
		return nil, resp
	}

	req.Varmap.Insert(protocol.ArrivalTime(time.Now().UTC()))
	if hasColor {
		req.Varmap.Insert(*color)
	}
	return req, nil
}

// mapParseError maps each parse error kind to a closed set of response
// codes.
func mapParseError(kind protocol.ParseErrorKind) protocol.ResponseCode {
	switch kind {
	case protocol.InvalidFormat:
		return protocol.CodeParseError
	case protocol.InvalidKey:
		return protocol.CodeUnauthorized
	case protocol.MissingVersion, protocol.MissingMethod:
		return protocol.CodeInvalidHeader
	case protocol.MissingRequestValue:
		return protocol.CodeInvalidName
	default: // MissingCode, NotFound
		return protocol.CodeError
	}
}
