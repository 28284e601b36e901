package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResponseBuilder_RequiresCode(t *testing.T) {
	_, err := NewResponseBuilder().Message("hi").Build()
	require.Error(t, err)
}

func TestCustomCode_RejectsReserved(t *testing.T) {
	_, err := CustomCode(10)
	require.Error(t, err)

	c, err := CustomCode(200)
	require.NoError(t, err)
	require.Equal(t, ResponseCode(200), c)
}

// Parsing a serialized Response yields equal code/version/token/user/
// message fields.
func TestResponseRoundTrip(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	resp, err := NewResponseBuilder().
		Code(CodeOK).
		User("Alice").
		Time(ts).
		Message("Hello world!").
		Custom("Trace", "abc").
		Build()
	require.NoError(t, err)

	frame, err := resp.AsFrame()
	require.NoError(t, err)

	got, perr := ParseResponse(frame)
	require.Nil(t, perr)
	require.Equal(t, resp.Code, got.Code)
	require.Equal(t, resp.Version, got.Version)
	require.Equal(t, *resp.User, *got.User)
	require.Equal(t, *resp.Message, *got.Message)
	require.True(t, resp.Time.Equal(*got.Time))
	require.Equal(t, resp.Custom, got.Custom)
}

func TestResponseExampleFrame(t *testing.T) {
	var f Frame
	copy(f[:], "<CHAT \\ 1.0>\n<Code@10>\n<User@'Alice'>\n<Time@'2024-01-02 03:04:05'>\n<Message@'Hello world!'>\n")

	resp, perr := ParseResponse(f)
	require.Nil(t, perr)
	require.Equal(t, CodeOK, resp.Code)
	require.Equal(t, "Alice", *resp.User)
	require.Equal(t, "Hello world!", *resp.Message)
	require.Equal(t, 2024, resp.Time.Year())
}

func TestResponseSerialize_TooLarge(t *testing.T) {
	big := make([]byte, FrameSize*2)
	for i := range big {
		big[i] = 'a'
	}
	resp, err := NewResponseBuilder().Code(CodeOK).Message(string(big)).Build()
	require.NoError(t, err)

	_, err = resp.AsFrame()
	require.ErrorIs(t, err, ErrTooLarge)
}
