package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRequest_Bind(t *testing.T) {
	var f Frame
	copy(f[:], "<CHAT \\ 1.0>\n<Method@Bind>\n<Name@'Alice'>\n")

	req, perr := ParseRequest(nil, f)
	require.Nil(t, perr)
	require.Equal(t, Bind, req.Method)
	require.Equal(t, "Alice", req.Value)
	require.Equal(t, SupportedVersion, req.Version)
	require.Empty(t, req.Custom)
}

func TestParseRequest_BareWordValue(t *testing.T) {
	var f Frame
	copy(f[:], "<CHAT \\ 1.0>\n<Method@Bind>\n<Name@Alice>\n")

	req, perr := ParseRequest(nil, f)
	require.Nil(t, perr)
	require.Equal(t, "Alice", req.Value)
}

func TestParseRequest_CustomHeaders(t *testing.T) {
	var f Frame
	copy(f[:], "<CHAT \\ 1.0>\n<Method@Send>\n<Message@'hi'>\n<Trace@abc123>\n")

	req, perr := ParseRequest(nil, f)
	require.Nil(t, perr)
	require.Equal(t, "hi", req.Value)
	require.Equal(t, "abc123", req.Custom["Trace"])
}

func TestParseRequest_MissingVersion(t *testing.T) {
	var f Frame
	copy(f[:], "<garbage>\n<Method@Send>\n<Message@'hi'>\n")

	_, perr := ParseRequest(nil, f)
	require.NotNil(t, perr)
	require.Equal(t, MissingVersion, perr.Kind)
}

func TestParseRequest_WrongKeyOnValueLine(t *testing.T) {
	var f Frame
	copy(f[:], "<CHAT \\ 1.0>\n<Method@Send>\n<Wrong@'x'>\n")

	_, perr := ParseRequest(nil, f)
	require.NotNil(t, perr)
	require.Equal(t, InvalidKey, perr.Kind)
}

func TestParseRequest_MissingValueLine(t *testing.T) {
	var f Frame
	copy(f[:], "<CHAT \\ 1.0>\n<Method@Send>\n")

	_, perr := ParseRequest(nil, f)
	require.NotNil(t, perr)
	require.Equal(t, MissingRequestValue, perr.Kind)
}

func TestParseRequest_UnknownMethod(t *testing.T) {
	var f Frame
	copy(f[:], "<CHAT \\ 1.0>\n<Method@Bogus>\n<Name@'x'>\n")

	_, perr := ParseRequest(nil, f)
	require.NotNil(t, perr)
	require.Equal(t, MissingMethod, perr.Kind)
}

// Parsing, re-serializing, and re-parsing a Request yields an equal
// version/method/value/custom map.
func TestRequestRoundTrip(t *testing.T) {
	for _, m := range []Method{Bind, Handshake, Send} {
		req := NewRequestBuilder(m).Value("hello world").Custom("Trace", "xyz").Build()

		frame, err := req.AsFrame()
		require.NoError(t, err)

		got, perr := ParseRequest(nil, frame)
		require.Nil(t, perr)
		require.Equal(t, req.Version, got.Version)
		require.Equal(t, req.Method, got.Method)
		require.Equal(t, req.Value, got.Value)
		require.Equal(t, req.Custom, got.Custom)
	}
}
