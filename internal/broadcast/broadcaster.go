// Package broadcast implements a single ingress-queue-to-broadcast-channel
// fan-out engine: a many-producer unbounded ingress queue feeding a
// bounded multi-consumer broadcast channel, with per-subscriber lag
// reporting.
package broadcast

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
	"github.com/hasirciogluhq/pinguino-chat/internal/telemetry"
	"github.com/sirupsen/logrus"
)

// DefaultCapacity is the default broadcast channel capacity.
const DefaultCapacity = 32

// Broadcaster is the singleton task that drains the ingress queue and
// republishes every frame to each current subscriber, using per-subscriber
// buffered channels with non-blocking sends (see DESIGN.md for the
// ordering/lag-reporting rationale).
type Broadcaster struct {
	queue    *unboundedQueue
	capacity int
	sink     telemetry.Sink
	log      logrus.FieldLogger

	mu     sync.Mutex
	subs   map[uint64]chan protocol.Frame
	nextID uint64
}

// NewBroadcaster returns a Broadcaster with the given per-subscriber
// channel capacity. A nil sink defaults to telemetry.NoopSink and a nil
// log defaults to the standard logrus logger.
func NewBroadcaster(capacity int, sink telemetry.Sink, log logrus.FieldLogger) *Broadcaster {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if sink == nil {
		sink = telemetry.NoopSink{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Broadcaster{
		queue:    newUnboundedQueue(),
		capacity: capacity,
		sink:     sink,
		log:      log,
		subs:     make(map[uint64]chan protocol.Frame),
	}
}

// Publish enqueues a serialized frame for fan-out. Never blocks the
// caller on subscriber speed (only briefly on the drain goroutine
// accepting the push).
func (b *Broadcaster) Publish(f protocol.Frame) {
	b.queue.Push(f)
}

// Subscription is a single Subscribed connection's receive end, plus a
// Cancel to unregister when the connection closes.
type Subscription struct {
	Frames <-chan protocol.Frame
	Cancel func()
}

// Subscribe registers a new receiver. Every frame Published after this
// call is delivered to it, in publication order, subject to lag drops if
// the subscriber falls more than capacity frames behind.
func (b *Broadcaster) Subscribe() Subscription {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	ch := make(chan protocol.Frame, b.capacity)
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
	return Subscription{Frames: ch, Cancel: cancel}
}

// Run drains the ingress queue and fans each frame out until ctx is
// cancelled, at which point it closes the queue, flushes what remains,
// and returns.
func (b *Broadcaster) Run(ctx context.Context) error {
	done := ctx.Done()
	for {
		select {
		case <-done:
			b.queue.Close()
			done = nil // avoid re-selecting a closed/cancelled Done channel
			continue
		case f, ok := <-b.queue.out:
			if !ok {
				return nil
			}
			b.fanOut(f)
		}
	}
}

func (b *Broadcaster) fanOut(f protocol.Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- f:
		default:
			taskID := protocol.TaskID(strconv.FormatUint(id, 10))
			b.log.WithField("subscriber", id).Warn("broadcast receiver lagged; frame dropped")
			b.sink.Publish(telemetry.Err(string(taskID), time.Now().UTC(), telemetry.Lagged))
		}
	}
}
