package core

import (
	"testing"

	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
	"github.com/hasirciogluhq/pinguino-chat/internal/state"
	"github.com/stretchr/testify/require"
)

func rawFrame(t *testing.T, text string) protocol.Frame {
	t.Helper()
	var f protocol.Frame
	copy(f[:], text)
	return f
}

func TestDispatch_InitialSendIsUnauthorized(t *testing.T) {
	routes := DefaultRoutes()
	cs := state.NewConnState(state.NewAppState(protocol.NewVarmap()), nil)

	frame := rawFrame(t, "<CHAT \\ 1.0>\n<Method@Send>\n<Message@'hi'>\n")
	result := routes.Dispatch(cs, nil, frame, PhaseInitial)

	require.False(t, result.OK)
	resp, perr := protocol.ParseResponse(result.Frame)
	require.Nil(t, perr)
	require.Equal(t, protocol.CodeUnauthorized, resp.Code)
}

func TestDispatch_SubscribedBindIsError(t *testing.T) {
	routes := DefaultRoutes()
	cs := state.NewConnState(state.NewAppState(protocol.NewVarmap()), nil)

	frame := rawFrame(t, "<CHAT \\ 1.0>\n<Method@Bind>\n<Name@Alice>\n")
	result := routes.Dispatch(cs, nil, frame, PhaseSubscribed)

	require.False(t, result.OK)
	resp, perr := protocol.ParseResponse(result.Frame)
	require.Nil(t, perr)
	require.Equal(t, protocol.CodeError, resp.Code)
}

func TestDispatch_BindThenHandshakeThenSend(t *testing.T) {
	routes := DefaultRoutes()
	app := state.NewAppState(protocol.NewVarmap())
	cs := state.NewConnState(app, nil)

	bindResult := routes.Dispatch(cs, nil, rawFrame(t, "<CHAT \\ 1.0>\n<Method@Bind>\n<Name@Alice>\n"), PhaseInitial)
	require.True(t, bindResult.OK)
	bindResp, perr := protocol.ParseResponse(bindResult.Frame)
	require.Nil(t, perr)
	require.Equal(t, protocol.CodeAuthOK, bindResp.Code)
	token := *bindResp.Token
	require.Len(t, token, 36)

	hsFrame := rawFrame(t, "<CHAT \\ 1.0>\n<Method@Handshake>\n<Authorization@'"+token+"'>\n")
	hsResult := routes.Dispatch(cs, nil, hsFrame, PhaseInitial)
	require.True(t, hsResult.OK)

	name, ok := cs.BoundUser()
	require.True(t, ok)
	require.Equal(t, "Alice", name)

	sendFrame := rawFrame(t, "<CHAT \\ 1.0>\n<Method@Send>\n<Message@'hello'>\n")
	sendResult := routes.Dispatch(cs, nil, sendFrame, PhaseSubscribed)
	require.True(t, sendResult.OK)
	sendResp, perr := protocol.ParseResponse(sendResult.Frame)
	require.Nil(t, perr)
	require.Equal(t, protocol.CodeOK, sendResp.Code)
	require.Equal(t, "Alice", *sendResp.User)
	require.Equal(t, "hello", *sendResp.Message)
}

func TestDispatch_DuplicateBind(t *testing.T) {
	routes := DefaultRoutes()
	app := state.NewAppState(protocol.NewVarmap())
	cs1 := state.NewConnState(app, nil)
	cs2 := state.NewConnState(app, nil)

	r1 := routes.Dispatch(cs1, nil, rawFrame(t, "<CHAT \\ 1.0>\n<Method@Bind>\n<Name@Alice>\n"), PhaseInitial)
	resp1, _ := protocol.ParseResponse(r1.Frame)
	require.Equal(t, protocol.CodeAuthOK, resp1.Code)

	r2 := routes.Dispatch(cs2, nil, rawFrame(t, "<CHAT \\ 1.0>\n<Method@Bind>\n<Name@Alice>\n"), PhaseInitial)
	resp2, _ := protocol.ParseResponse(r2.Frame)
	require.Equal(t, protocol.CodeAlreadyTaken, resp2.Code)
}

func TestDispatch_ParseFailureUsesCatchAll(t *testing.T) {
	routes := DefaultRoutes()
	cs := state.NewConnState(state.NewAppState(protocol.NewVarmap()), nil)

	result := routes.Dispatch(cs, nil, rawFrame(t, "<CHAT \\ 1.0>\n<Wrong@Send>\n<Message@'x'>\n"), PhaseInitial)
	require.False(t, result.OK)
	resp, perr := protocol.ParseResponse(result.Frame)
	require.Nil(t, perr)
	require.Equal(t, protocol.CodeInvalidHeader, resp.Code)
}
