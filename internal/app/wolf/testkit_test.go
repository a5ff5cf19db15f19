package wolf

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"wolfden/internal/app/ports"
	"wolfden/internal/domain/predator"
)

func newTestCore(t *testing.T, tuning predator.Tuning, journal ports.EventAppender) *Core {
	t.Helper()
	return NewCore(Config{
		Tuning:  tuning,
		Journal: journal,
		Metrics: &countingMetrics{},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Rand:    rand.New(rand.NewPCG(1, 2)),
		Now:     func() time.Time { return time.Unix(1700000000, 0) },
	})
}

func closeCore(t *testing.T, c *Core) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Close(ctx); err != nil {
		t.Fatalf("close core: %v", err)
	}
}

func (c *Core) setSatiation(v int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Satiation = v
}

type recordingJournal struct {
	mu     sync.Mutex
	events []predator.Event
	notify chan predator.Event
	err    error
}

func newRecordingJournal() *recordingJournal {
	return &recordingJournal{notify: make(chan predator.Event, 1024)}
}

func (j *recordingJournal) Append(_ context.Context, events []predator.Event) error {
	j.mu.Lock()
	j.events = append(j.events, events...)
	j.mu.Unlock()
	for _, e := range events {
		select {
		case j.notify <- e:
		default:
		}
	}
	return j.err
}

func (j *recordingJournal) snapshot() []predator.Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]predator.Event(nil), j.events...)
}

func (j *recordingJournal) waitFor(t *testing.T, typ predator.EventType, within time.Duration) predator.Event {
	t.Helper()
	deadline := time.After(within)
	for {
		select {
		case e := <-j.notify:
			if e.Type == typ {
				return e
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", typ)
			return predator.Event{}
		}
	}
}

type countingMetrics struct {
	mu        sync.Mutex
	outcomes  map[predator.Outcome]int
	issued    int
	digestion int
}

func (m *countingMetrics) RecordOutcome(_ predator.ReportKind, outcome predator.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = map[predator.Outcome]int{}
	}
	m.outcomes[outcome]++
}

func (m *countingMetrics) RecordIssuedID() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued++
}

func (m *countingMetrics) RecordDigestion() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digestion++
}

var _ ports.EventAppender = (*recordingJournal)(nil)
var _ ports.OutcomeMetrics = (*countingMetrics)(nil)
