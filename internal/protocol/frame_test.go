package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// A frame with the color sentinel in its tail has those bytes zeroed
// before text parsing and can be restored.
func TestColorRoundTrip(t *testing.T) {
	req := NewRequestBuilder(Send).Value("hello").Build()
	frame, err := req.AsFrame()
	require.NoError(t, err)

	tagged := StampColor(frame, Color{R: 0xFF, G: 0x00, B: 0x00})

	stripped, color, ok := ExtractColor(tagged)
	require.True(t, ok)
	require.Equal(t, Color{R: 0xFF, G: 0x00, B: 0x00}, *color)

	for i := FrameSize - 5; i < FrameSize; i++ {
		require.Equal(t, byte(0), stripped[i])
	}

	got, perr := ParseRequest(nil, stripped)
	require.Nil(t, perr)
	require.Equal(t, "hello", got.Value)

	restamped := StampColor(stripped, *color)
	require.Equal(t, tagged, restamped)
}

func TestExtractColor_Absent(t *testing.T) {
	req := NewRequestBuilder(Bind).Value("Alice").Build()
	frame, err := req.AsFrame()
	require.NoError(t, err)

	_, color, ok := ExtractColor(frame)
	require.False(t, ok)
	require.Nil(t, color)
}

func TestReadWriteFrame(t *testing.T) {
	var f Frame
	copy(f[:], "<CHAT \\ 1.0>\n<Method@Bind>\n<Name@Alice>\n")

	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, f))
	require.Equal(t, FrameSize, buf.Len())

	got, err := ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, f, got)
}
