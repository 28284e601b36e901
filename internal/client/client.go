// Package client is a thin façade over the wire protocol for programs that
// want to bind, handshake, send, and subscribe without hand-rolling frame
// I/O. It stays a thin wrapper — no pluggable-stage system of its own,
// unlike the router — built around a single net.Conn plus a subscribe
// goroutine.
package client

import (
	"context"
	"fmt"
	"net"

	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
)

// Client wraps one TCP connection to a router.
type Client struct {
	conn net.Conn
}

// Dial connects to addr and returns a Client ready for Bind/Handshake.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// roundTrip writes req and reads exactly one reply frame, for the Initial
// state's Bind/Handshake exchange.
func (c *Client) roundTrip(req *protocol.Request) (*protocol.Response, error) {
	frame, err := req.AsFrame()
	if err != nil {
		return nil, fmt.Errorf("client: encode request: %w", err)
	}
	if err := protocol.WriteFrame(c.conn, frame); err != nil {
		return nil, fmt.Errorf("client: write request: %w", err)
	}
	reply, err := protocol.ReadFrame(c.conn)
	if err != nil {
		return nil, fmt.Errorf("client: read reply: %w", err)
	}
	resp, perr := protocol.ParseResponse(reply)
	if perr != nil {
		return nil, fmt.Errorf("client: parse reply: %w", perr)
	}
	return resp, nil
}

// Bind attempts to claim name. On AuthOK the returned response's Token is
// the credential to pass to Handshake.
func (c *Client) Bind(name string) (*protocol.Response, error) {
	return c.roundTrip(protocol.NewRequestBuilder(protocol.Bind).Value(name).Build())
}

// Handshake exchanges a token for Subscribed status. After a successful
// call the connection is promoted server-side and the caller should use
// Subscribe to receive broadcast frames and Send to publish.
func (c *Client) Handshake(token string) (*protocol.Response, error) {
	return c.roundTrip(protocol.NewRequestBuilder(protocol.Handshake).Value(token).Build())
}

// Send publishes a message. It does not wait for or return the broadcast
// echo — the router never echoes locally, so the caller must be
// Subscribed to observe its own message arrive back.
func (c *Client) Send(message string) error {
	req := protocol.NewRequestBuilder(protocol.Send).Value(message).Build()
	frame, err := req.AsFrame()
	if err != nil {
		return fmt.Errorf("client: encode send: %w", err)
	}
	if err := protocol.WriteFrame(c.conn, frame); err != nil {
		return fmt.Errorf("client: write send: %w", err)
	}
	return nil
}

// Subscribe starts a background goroutine reading frames from the
// connection and parsing them as responses, delivering each on the
// returned channel until ctx is cancelled or the connection closes (at
// which point the channel is closed).
func (c *Client) Subscribe(ctx context.Context) <-chan *protocol.Response {
	out := make(chan *protocol.Response)
	go func() {
		defer close(out)
		for {
			frame, err := protocol.ReadFrame(c.conn)
			if err != nil {
				return
			}
			resp, perr := protocol.ParseResponse(frame)
			if perr != nil {
				continue
			}
			select {
			case out <- resp:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Terminate closes the underlying connection.
func (c *Client) Terminate() error {
	return c.conn.Close()
}
