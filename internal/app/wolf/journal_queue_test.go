package wolf

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"wolfden/internal/domain/predator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stuckJournal blocks every Append until released, ignoring ctx.
type stuckJournal struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newStuckJournal(t *testing.T) *stuckJournal {
	j := &stuckJournal{entered: make(chan struct{}, 1), release: make(chan struct{})}
	t.Cleanup(j.unblock)
	return j
}

func (j *stuckJournal) Append(context.Context, []predator.Event) error {
	select {
	case j.entered <- struct{}{}:
	default:
	}
	<-j.release
	return nil
}

func (j *stuckJournal) unblock() {
	j.once.Do(func() { close(j.release) })
}

func returnsWithin(t *testing.T, d time.Duration, what string, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("%s did not return within %s", what, d)
	}
}

func TestCheckPrey_DoesNotWaitForStalledJournal(t *testing.T) {
	journal := newStuckJournal(t)
	c := newTestCore(t, predator.DefaultTuning(), journal)

	returnsWithin(t, time.Second, "first CheckPrey", func() {
		c.CheckPrey(context.Background(), predator.PreyReport{ID: 1, Weight: 3, Distance: 0})
	})
	<-journal.entered
	returnsWithin(t, time.Second, "CheckPrey behind a stalled write", func() {
		c.CheckPrey(context.Background(), predator.PreyReport{ID: 2, Weight: 3, Distance: 0})
	})
	if got := c.Snapshot().Satiation; got != 6 {
		t.Fatalf("expected satiation 6, got %d", got)
	}
}

func TestMoverStop_DoesNotWaitForStalledJournal(t *testing.T) {
	journal := newStuckJournal(t)
	c := newTestCore(t, predator.Tuning{SettleDelay: 0, MoveInterval: time.Millisecond}, journal)

	m := c.StartMover(context.Background())
	<-journal.entered
	returnsWithin(t, time.Second, "Mover.Stop", m.Stop)
}

func TestJournalQueue_DropsWhenFullAndCloseHonorsDeadline(t *testing.T) {
	journal := newStuckJournal(t)
	c := NewCore(Config{
		Journal:       journal,
		JournalBuffer: 1,
		Logger:        discardLogger(),
	})
	pos := c.Snapshot().Position

	c.CheckWater(context.Background(), predator.WaterReport{ID: 1, X: pos.X, Y: pos.Y, Volume: 1})
	<-journal.entered
	returnsWithin(t, time.Second, "checks against a full buffer", func() {
		for i := 0; i < 20; i++ {
			c.CheckWater(context.Background(), predator.WaterReport{ID: 1, X: pos.X, Y: pos.Y, Volume: 1})
		}
	})
	// One batch is in the stalled Append, one waits in the buffer.
	if got := c.DroppedJournalEvents(); got != 19 {
		t.Fatalf("expected 19 dropped events, got %d", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := c.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected close to give up at the deadline, got %v", err)
	}

	journal.unblock()
	closeCore(t, c)
	c.CheckWater(context.Background(), predator.WaterReport{ID: 1, X: pos.X, Y: pos.Y, Volume: 1})
	if got := c.DroppedJournalEvents(); got != 20 {
		t.Fatalf("expected events after close to be dropped, got %d", got)
	}
}

// slowJournal blocks the first Append until its ctx ends, then records.
type slowJournal struct {
	*recordingJournal
	mu    sync.Mutex
	calls int
}

func (j *slowJournal) Append(ctx context.Context, events []predator.Event) error {
	j.mu.Lock()
	j.calls++
	first := j.calls == 1
	j.mu.Unlock()
	if first {
		<-ctx.Done()
		return ctx.Err()
	}
	return j.recordingJournal.Append(ctx, events)
}

func TestJournalQueue_BoundsEachAppend(t *testing.T) {
	journal := &slowJournal{recordingJournal: newRecordingJournal()}
	c := NewCore(Config{
		Journal:        journal,
		JournalTimeout: 20 * time.Millisecond,
		Logger:         discardLogger(),
	})

	c.CheckPrey(context.Background(), predator.PreyReport{ID: 1, Weight: 1, Distance: 0})
	c.CheckPrey(context.Background(), predator.PreyReport{ID: 2, Weight: 1, Distance: 0})

	evt := journal.waitFor(t, predator.EventConsumption, 2*time.Second)
	if evt.ReporterID != 2 {
		t.Fatalf("expected the writer to move past the timed-out batch, got reporter %d", evt.ReporterID)
	}
	closeCore(t, c)
}
