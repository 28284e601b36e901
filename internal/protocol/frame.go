// Package protocol implements the line-oriented chat wire format: fixed
// 512-byte frames, request/response parsing, and the type-indexed Varmap
// used to pass auxiliary data between pipeline stages.
package protocol

import (
	"bytes"
	"fmt"
	"io"
)

// FrameSize is the fixed length of every frame read from or written to a
// connection.
const FrameSize = 512

// colorSentinel marks the optional 5-byte color tail: byte[507] and
// byte[511] both equal this value when a color is attached.
const colorSentinel = 0x23

// colorTailOffset is the index of the first sentinel byte in a Frame.
const colorTailOffset = FrameSize - 5

// Frame is a fixed-size wire buffer. Unused tail bytes are zero.
type Frame [FrameSize]byte

// ReadFrame reads exactly one Frame from r. io.ReadFull surfaces io.EOF for
// a clean 0-byte read and io.ErrUnexpectedEOF for a short read; both are
// treated as connection-closing conditions by the caller.
func ReadFrame(r io.Reader) (Frame, error) {
	var f Frame
	if _, err := io.ReadFull(r, f[:]); err != nil {
		return f, err
	}
	return f, nil
}

// WriteFrame writes f in a single Write call.
func WriteFrame(w io.Writer, f Frame) error {
	_, err := w.Write(f[:])
	return err
}

// Color is the optional decorative RGB hint carried in a frame's tail.
type Color struct {
	R, G, B byte
}

// hasColorTail reports whether both sentinel bytes are set.
func (f Frame) hasColorTail() bool {
	return f[colorTailOffset] == colorSentinel && f[FrameSize-1] == colorSentinel
}

// ExtractColor reports the attached color, if any, and returns a copy of f
// with the five tail bytes zeroed so text parsing never sees them.
func ExtractColor(f Frame) (Frame, *Color, bool) {
	if !f.hasColorTail() {
		return f, nil, false
	}
	c := &Color{R: f[colorTailOffset+1], G: f[colorTailOffset+2], B: f[colorTailOffset+3]}
	out := f
	for i := colorTailOffset; i < FrameSize; i++ {
		out[i] = 0
	}
	return out, c, true
}

// StampColor writes c into the five tail bytes of f, overwriting whatever
// was there (the tail is otherwise unused by text parsing).
func StampColor(f Frame, c Color) Frame {
	out := f
	out[colorTailOffset] = colorSentinel
	out[colorTailOffset+1] = c.R
	out[colorTailOffset+2] = c.G
	out[colorTailOffset+3] = c.B
	out[FrameSize-1] = colorSentinel
	return out
}

// trimmedText returns the frame's content up to the first NUL byte,
// decoded as UTF-8 text. Any attached color tail must already have been
// extracted via ExtractColor before calling this.
func trimmedText(f Frame) string {
	n := bytes.IndexByte(f[:], 0)
	if n < 0 {
		n = FrameSize
	}
	return string(f[:n])
}

// stringToFrame zero-fills a Frame and copies s into it, truncating s if it
// would overflow. Truncation here is a last resort for malformed callers;
// normal callers are expected to have already validated length, as
// Request.AsFrame and Response.AsFrame do.
func stringToFrame(s string) Frame {
	var f Frame
	b := []byte(s)
	if len(b) > FrameSize {
		b = b[:FrameSize]
	}
	copy(f[:], b)
	return f
}

// ErrTooLarge is returned when a serialized request or response would not
// fit within a single Frame.
var ErrTooLarge = fmt.Errorf("protocol: serialized message exceeds %d bytes", FrameSize)
