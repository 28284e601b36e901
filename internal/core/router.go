package core

import (
	"context"
	"fmt"
	"net"

	"github.com/hasirciogluhq/pinguino-chat/internal/broadcast"
	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
	"github.com/hasirciogluhq/pinguino-chat/internal/state"
	"github.com/hasirciogluhq/pinguino-chat/internal/telemetry"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Router owns the listener, the shared AppState, the Broadcaster, and the
// active pipeline stages.
type Router struct {
	cfg    Config
	app    *state.AppState
	bc     *broadcast.Broadcaster
	routes Routes
	before state.BeforeHook
	after  state.AfterHook
	sink   telemetry.Sink
	log    logrus.FieldLogger

	ready chan net.Addr
}

// RouterBuilder configures a Router before it starts listening. Every
// stage and hook defaults to its built-in implementation and may be
// swapped at build time.
type RouterBuilder struct {
	cfg       Config
	routes    Routes
	before    state.BeforeHook
	after     state.AfterHook
	extension protocol.Varmap
	sink      telemetry.Sink
	log       logrus.FieldLogger
}

// NewRouterBuilder returns a builder pre-loaded with every default.
func NewRouterBuilder() *RouterBuilder {
	return &RouterBuilder{
		cfg:       DefaultConfig(),
		routes:    DefaultRoutes(),
		extension: protocol.NewVarmap(),
		sink:      telemetry.NoopSink{},
		log:       logrus.StandardLogger(),
	}
}

func (b *RouterBuilder) Host(host string) *RouterBuilder {
	b.cfg.Host = host
	return b
}

func (b *RouterBuilder) Port(port int) *RouterBuilder {
	b.cfg.Port = port
	return b
}

func (b *RouterBuilder) Capacity(c int) *RouterBuilder {
	b.cfg.Capacity = c
	return b
}

func (b *RouterBuilder) Routes(routes Routes) *RouterBuilder {
	b.routes = routes
	return b
}

func (b *RouterBuilder) Before(hook state.BeforeHook) *RouterBuilder {
	b.before = hook
	return b
}

func (b *RouterBuilder) After(hook state.AfterHook) *RouterBuilder {
	b.after = hook
	return b
}

// Insert attaches v to the extension Varmap every ConnState/stage can read
// from AppState.Extension.
func (b *RouterBuilder) Insert(v any) *RouterBuilder {
	b.extension.Insert(v)
	return b
}

func (b *RouterBuilder) Sink(sink telemetry.Sink) *RouterBuilder {
	b.sink = sink
	return b
}

func (b *RouterBuilder) Logger(log logrus.FieldLogger) *RouterBuilder {
	b.log = log
	return b
}

// Build constructs the Router. It does not start listening; call Run.
func (b *RouterBuilder) Build() *Router {
	before := b.before
	if before == nil {
		before = defaultBeforeHook()
	}
	after := b.after
	if after == nil {
		after = defaultAfterHook()
	}
	return &Router{
		cfg:    b.cfg,
		app:    state.NewAppState(b.extension),
		bc:     broadcast.NewBroadcaster(b.cfg.Capacity, b.sink, b.log),
		routes: b.routes,
		before: before,
		after:  after,
		sink:   b.sink,
		log:    b.log,
		ready:  make(chan net.Addr, 1),
	}
}

// Addr reports the configured bind address.
func (r *Router) Addr() string {
	return fmt.Sprintf("%s:%d", r.cfg.Host, r.cfg.Port)
}

// AppState exposes the shared state, mainly for tests.
func (r *Router) AppState() *state.AppState {
	return r.app
}

// Ready reports the actual bound address once Run's listener is up,
// useful in tests that bind to port 0. It delivers at most one value.
func (r *Router) Ready() <-chan net.Addr {
	return r.ready
}

// Run creates the listener, starts the broadcaster, and accepts
// connections until ctx is cancelled or the listener errors. It returns
// once the broadcaster and the accept loop have exited; per-connection
// goroutines are not waited for.
func (r *Router) Run(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", r.Addr())
	if err != nil {
		return fmt.Errorf("core: listen on %s: %w", r.Addr(), err)
	}
	r.ready <- ln.Addr()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.bc.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})

	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("core: accept: %w", err)
			}
			go r.handleConnection(ctx, conn)
		}
	})

	return g.Wait()
}
