package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/hasirciogluhq/pinguino-chat/internal/client"
	"github.com/hasirciogluhq/pinguino-chat/internal/core"
	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
	"github.com/stretchr/testify/require"
)

// startRouter runs a router on an ephemeral port and returns the address
// its listener actually bound (router.Addr() would report port 0).
func startRouter(t *testing.T) (string, func()) {
	t.Helper()
	router := core.NewRouterBuilder().Host("127.0.0.1").Port(0).Build()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = router.Run(ctx)
	}()
	var addr string
	select {
	case a := <-router.Ready():
		addr = a.String()
	case <-time.After(2 * time.Second):
		t.Fatal("router not ready")
	}
	return addr, func() {
		cancel()
		<-done
	}
}

func TestClient_BindHandshakeSendSubscribe(t *testing.T) {
	addr, stop := startRouter(t)
	defer stop()

	a, err := client.Dial(addr)
	require.NoError(t, err)
	defer a.Terminate()

	bindResp, err := a.Bind("Alice")
	require.NoError(t, err)
	require.Equal(t, protocol.CodeAuthOK, bindResp.Code)

	hsResp, err := a.Handshake(*bindResp.Token)
	require.NoError(t, err)
	require.Equal(t, protocol.CodeAuthOK, hsResp.Code)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	frames := a.Subscribe(ctx)

	b, err := client.Dial(addr)
	require.NoError(t, err)
	defer b.Terminate()
	bBind, err := b.Bind("Bob")
	require.NoError(t, err)
	_, err = b.Handshake(*bBind.Token)
	require.NoError(t, err)
	require.NoError(t, b.Send("hello from bob"))

	select {
	case resp := <-frames:
		require.Equal(t, protocol.CodeOK, resp.Code)
		require.Equal(t, "Bob", *resp.User)
		require.Equal(t, "hello from bob", *resp.Message)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for broadcast frame")
	}
}
