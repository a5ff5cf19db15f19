package wolf

import (
	"context"
	"time"

	"wolfden/internal/domain/predator"
)

// Mover is the handle of the background movement and digestion loop.
type Mover struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartMover launches the loop. It runs until ctx is cancelled or Stop is called.
func (c *Core) StartMover(ctx context.Context) *Mover {
	ctx, cancel := context.WithCancel(ctx)
	m := &Mover{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(m.done)
		c.roam(ctx)
	}()
	return m
}

// Stop cancels the loop and waits for it to return.
func (m *Mover) Stop() {
	m.cancel()
	<-m.done
}

func (m *Mover) Done() <-chan struct{} {
	return m.done
}

func (c *Core) roam(ctx context.Context) {
	if !pause(ctx, c.tuning.SettleDelay) {
		return
	}
	for {
		full := c.beginCycle()
		if full && !pause(ctx, c.tuning.DigestPause) {
			c.abortDigestion()
			return
		}
		c.endCycle(full)
		if !pause(ctx, c.tuning.MoveInterval) {
			return
		}
	}
}

// beginCycle decides whether this cycle digests. The lock is released before
// the caller pauses, so consumption checks keep answering while the wolf rests.
func (c *Core) beginCycle() bool {
	c.mu.Lock()
	full := c.state.Full()
	if full {
		c.state.Digesting = true
	}
	evt := predator.Event{
		Type:       predator.EventDigestStarted,
		Satiation:  c.state.Satiation,
		Position:   c.state.Position,
		OccurredAt: c.now(),
	}
	c.mu.Unlock()

	if !full {
		return false
	}
	c.log.Info("the wolf will now digest", "pause", c.tuning.DigestPause, "satiation", evt.Satiation)
	if c.metrics != nil {
		c.metrics.RecordDigestion()
	}
	c.record(evt)
	return true
}

// endCycle relocates the wolf and, after a digestion pause, resets satiation.
func (c *Core) endCycle(full bool) {
	c.mu.Lock()
	c.state.Position = c.randomPositionLocked()
	if full {
		c.state.Digest()
	}
	snap := c.state
	at := c.now()
	c.mu.Unlock()

	events := make([]predator.Event, 0, 2)
	if full {
		events = append(events, predator.Event{
			Type:       predator.EventDigested,
			Satiation:  snap.Satiation,
			Position:   snap.Position,
			OccurredAt: at,
		})
	}
	events = append(events, predator.Event{
		Type:       predator.EventMoved,
		Satiation:  snap.Satiation,
		Position:   snap.Position,
		OccurredAt: at,
	})
	c.log.Info("the wolf moved", "x", snap.Position.X, "y", snap.Position.Y)
	c.record(events...)
}

// abortDigestion clears the digesting flag when the loop ends mid-pause.
// Satiation is left as is; only a completed pause digests.
func (c *Core) abortDigestion() {
	c.mu.Lock()
	c.state.Digesting = false
	c.mu.Unlock()
}

// pause sleeps for d and reports false if ctx ended first.
func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
