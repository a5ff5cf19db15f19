package wolf

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"wolfden/internal/app/ports"
	"wolfden/internal/domain/predator"
)

const (
	DefaultJournalBuffer  = 1024
	DefaultJournalTimeout = 5 * time.Second
)

// journalQueue hands events to a single writer goroutine. push never blocks:
// when the buffer is full the batch is dropped and counted.
type journalQueue struct {
	sink    ports.EventAppender
	timeout time.Duration
	log     *slog.Logger

	mu      sync.Mutex
	closed  bool
	ch      chan []predator.Event
	done    chan struct{}
	dropped atomic.Uint64
}

func newJournalQueue(sink ports.EventAppender, buffer int, timeout time.Duration, log *slog.Logger) *journalQueue {
	if buffer <= 0 {
		buffer = DefaultJournalBuffer
	}
	if timeout <= 0 {
		timeout = DefaultJournalTimeout
	}
	q := &journalQueue{
		sink:    sink,
		timeout: timeout,
		log:     log,
		ch:      make(chan []predator.Event, buffer),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *journalQueue) push(events []predator.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.dropped.Add(uint64(len(events)))
		return
	}
	select {
	case q.ch <- events:
	default:
		n := q.dropped.Add(uint64(len(events)))
		q.log.Warn("journal buffer full, dropping events", "event", events[0].Type, "dropped_total", n)
	}
}

func (q *journalQueue) run() {
	defer close(q.done)
	for events := range q.ch {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		if err := q.sink.Append(ctx, events); err != nil {
			q.log.Warn("journal append failed", "event", events[0].Type, "err", err)
		}
		cancel()
	}
}

// close stops accepting events and waits for the backlog until ctx ends.
func (q *journalQueue) close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
