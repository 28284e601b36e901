package broadcast

import "github.com/hasirciogluhq/pinguino-chat/internal/protocol"

// unboundedQueue is a multi-producer, single-consumer ingress queue. Go
// has no built-in unbounded channel, so this hand-rolls the usual idiom: a
// goroutine holds a growing slice-backed buffer and selects between
// accepting more input and draining to an unbuffered output channel, so
// Push never blocks waiting on a slow consumer.
type unboundedQueue struct {
	in  chan protocol.Frame
	out chan protocol.Frame
}

func newUnboundedQueue() *unboundedQueue {
	q := &unboundedQueue{
		in:  make(chan protocol.Frame),
		out: make(chan protocol.Frame),
	}
	go q.run()
	return q
}

func (q *unboundedQueue) run() {
	var buf []protocol.Frame
	for {
		if len(buf) == 0 {
			v, ok := <-q.in
			if !ok {
				close(q.out)
				return
			}
			buf = append(buf, v)
			continue
		}

		select {
		case v, ok := <-q.in:
			if !ok {
				for _, item := range buf {
					q.out <- item
				}
				close(q.out)
				return
			}
			buf = append(buf, v)
		case q.out <- buf[0]:
			buf = buf[1:]
		}
	}
}

// Push enqueues f. It blocks only until the drain goroutine is ready to
// accept it, never on a slow downstream consumer.
func (q *unboundedQueue) Push(f protocol.Frame) {
	q.in <- f
}

// Close signals no more pushes will occur; the drain goroutine flushes any
// buffered frames and then closes out.
func (q *unboundedQueue) Close() {
	close(q.in)
}
