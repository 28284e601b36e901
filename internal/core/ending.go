package core

import (
	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
	"github.com/hasirciogluhq/pinguino-chat/internal/state"
)

// serialize turns an Outcome's Response into a frame, preserving its
// polarity. A Response that cannot be serialized (>512 bytes) becomes a
// FatalError frame and the polarity is forced to false.
func serialize(outcome Outcome) (protocol.Frame, bool) {
	frame, err := outcome.Response.AsFrame()
	if err != nil {
		return fatalFrame(outcome.Response.Version), false
	}
	return frame, outcome.OK
}

func fatalFrame(version string) protocol.Frame {
	resp, _ := protocol.NewResponseBuilder().Code(protocol.CodeFatalError).Build()
	resp.Version = version
	frame, err := resp.AsFrame()
	if err != nil {
		// A bare FatalError response always fits; this is unreachable in
		// practice but keeps the function total.
		var f protocol.Frame
		return f
	}
	return frame
}

// DefaultBindEndingTransform and DefaultHandshakeEndingTransform serialize
// without any tail decoration: color is a Send/broadcast concept.

type DefaultBindEndingTransform struct{}

func (DefaultBindEndingTransform) Transform(cs *state.ConnState, outcome Outcome) (protocol.Frame, bool) {
	return serialize(outcome)
}

type DefaultHandshakeEndingTransform struct{}

func (DefaultHandshakeEndingTransform) Transform(cs *state.ConnState, outcome Outcome) (protocol.Frame, bool) {
	return serialize(outcome)
}

// DefaultSendEndingTransform additionally serves as the catch-all ending
// transform for StartingTransform-level parse failures, since the
// dispatcher feeds those in before a method is even known, and re-stamps
// the color tail if one is attached to the outgoing Response.
type DefaultSendEndingTransform struct{}

func (DefaultSendEndingTransform) Transform(cs *state.ConnState, outcome Outcome) (protocol.Frame, bool) {
	frame, ok := serialize(outcome)
	if color, present := protocol.Get[protocol.Color](outcome.Response.Varmap); present {
		frame = protocol.StampColor(frame, color)
	}
	return frame, ok
}
