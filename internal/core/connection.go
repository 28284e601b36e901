package core

import (
	"context"
	"net"
	"time"

	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
	"github.com/hasirciogluhq/pinguino-chat/internal/state"
	"github.com/hasirciogluhq/pinguino-chat/internal/telemetry"
	"github.com/sirupsen/logrus"
)

// keepaliveIdle is the 60s idle interval enabled only once a connection
// reaches Subscribed. net.TCPConn exposes the knob directly.
const keepaliveIdle = 60 * time.Second

// handleConnection runs the full per-connection state machine: Initial
// (read/dispatch/reply, looping on Bind, promoting on successful
// Handshake, closing otherwise) then, once Subscribed, the broadcast
// fan-out inner loop. BeforeHook/AfterHook run exactly once each.
func (r *Router) handleConnection(ctx context.Context, conn net.Conn) {
	cs := state.NewConnState(r.app, r.after)
	r.before.Execute(cs)
	defer func() {
		r.after.Execute(cs)
		conn.Close()
	}()

	addr := conn.RemoteAddr()
	log := r.log.WithField("remote_addr", addr)

	phase := PhaseInitial
	for phase == PhaseInitial {
		frame, err := protocol.ReadFrame(conn)
		if err != nil {
			log.WithError(err).Debug("connection closed during initial read")
			return
		}

		result := r.routes.Dispatch(cs, addr, frame, phase)
		if err := protocol.WriteFrame(conn, result.Frame); err != nil {
			log.WithError(err).Debug("write failed during initial phase")
			return
		}

		switch result.Tag {
		case RouteBind:
			// Repeated Bind attempts on the same connection are allowed
			// rather than closing after one exchange.
			continue
		case RouteHandshake:
			if !result.OK {
				return
			}
			setKeepAlive(conn)
			phase = PhaseSubscribed
		default: // RouteSend (Initial+Send -> Unauthorized) or unclassified
			return
		}
	}

	r.runSubscribed(ctx, conn, cs, log)
}

// runSubscribed cooperatively selects between an inbound frame and a
// broadcast delivery, never starving either arm. Go's select already polls
// ready cases pseudo-randomly, so no extra fairness bookkeeping is needed.
func (r *Router) runSubscribed(ctx context.Context, conn net.Conn, cs *state.ConnState, log logrus.FieldLogger) {
	sub := r.bc.Subscribe()
	defer sub.Cancel()

	type readResult struct {
		frame protocol.Frame
		err   error
	}
	reads := make(chan readResult)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		for {
			f, err := protocol.ReadFrame(conn)
			select {
			case reads <- readResult{frame: f, err: err}:
			case <-stop:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	taskID := protocol.TaskID(conn.RemoteAddr().String())

	for {
		select {
		case <-ctx.Done():
			return

		case rr := <-reads:
			if rr.err != nil {
				log.WithError(rr.err).Debug("connection closed during subscribed read")
				return
			}
			start := time.Now()
			result := r.routes.Dispatch(cs, conn.RemoteAddr(), rr.frame, PhaseSubscribed)
			if result.Tag == RouteSend && result.OK {
				// No local echo: the sender sees its own message arrive
				// back through the broadcast path like everyone else, so
				// every subscriber observes the same ordered view.
				r.bc.Publish(result.Frame)
				r.sink.Publish(telemetry.Elapsed(string(taskID), time.Now().UTC(), time.Since(start).Microseconds()))
				continue
			}
			if err := protocol.WriteFrame(conn, result.Frame); err != nil {
				log.WithError(err).Debug("write failed during subscribed phase")
				return
			}

		case f := <-sub.Frames:
			if err := protocol.WriteFrame(conn, f); err != nil {
				log.WithError(err).Debug("broadcast write failed")
				return
			}
		}
	}
}

func setKeepAlive(conn net.Conn) {
	tcp, ok := conn.(*net.TCPConn)
	if !ok {
		return
	}
	_ = tcp.SetKeepAlive(true)
	_ = tcp.SetKeepAlivePeriod(keepaliveIdle)
}
