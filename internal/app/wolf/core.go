// Package wolf owns the predator's shared state. One mutex serializes the
// foreground queries and the background mover; nothing sleeps or does I/O
// while holding it.
package wolf

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"wolfden/internal/app/ports"
	"wolfden/internal/domain/predator"
)

type Config struct {
	Tuning  predator.Tuning
	Journal ports.EventAppender
	Metrics ports.OutcomeMetrics
	Logger  *slog.Logger
	Rand    *rand.Rand
	Now     func() time.Time

	// JournalBuffer bounds the batches waiting for the journal writer.
	JournalBuffer int
	// JournalTimeout bounds a single journal Append.
	JournalTimeout time.Duration
}

type Core struct {
	mu     sync.Mutex
	state  predator.State
	tuning predator.Tuning
	rnd    *rand.Rand

	journal *journalQueue
	metrics ports.OutcomeMetrics
	log     *slog.Logger
	now     func() time.Time
}

// NewCore places the wolf at a random position before returning, so requests
// served before the mover's first tick never see an unassigned position.
func NewCore(cfg Config) *Core {
	c := &Core{
		tuning:  cfg.Tuning.Normalized(),
		rnd:     cfg.Rand,
		metrics: cfg.Metrics,
		log:     cfg.Logger,
		now:     cfg.Now,
	}
	if c.rnd == nil {
		c.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if cfg.Journal != nil {
		c.journal = newJournalQueue(cfg.Journal, cfg.JournalBuffer, cfg.JournalTimeout, c.log)
	}
	c.state = predator.NewState(c.tuning)
	c.state.Position = c.randomPositionLocked()
	c.log.Info("the wolf appeared", "x", c.state.Position.X, "y", c.state.Position.Y)
	return c
}

func (c *Core) Tuning() predator.Tuning {
	return c.tuning
}

// Snapshot copies the current state for logging and tests.
func (c *Core) Snapshot() predator.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Core) IssueUniqueID(_ context.Context) int {
	c.mu.Lock()
	id := c.state.NextID()
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.RecordIssuedID()
	}
	return id
}

// CheckPrey trusts the caller's self-reported distance.
func (c *Core) CheckPrey(_ context.Context, report predator.PreyReport) predator.Outcome {
	distance := float64(report.Distance)

	c.mu.Lock()
	outcome := c.state.Consume(distance, report.Weight)
	evt := c.consumptionEventLocked(predator.KindPrey, report.ID, outcome, report.Weight, distance)
	c.mu.Unlock()

	switch outcome {
	case predator.OutcomeConsumed:
		c.log.Info("ate a rabbit", "rabbit_id", report.ID, "satiation", evt.Satiation, "cap", c.tuning.SatiationCap)
	case predator.OutcomeSeenButNotConsumed:
		c.log.Info("saw a rabbit but was too full to catch it", "rabbit_id", report.ID)
	}
	c.settle(evt)
	return outcome
}

// CheckWater computes the distance from the wolf's current position.
func (c *Core) CheckWater(_ context.Context, report predator.WaterReport) predator.Outcome {
	c.mu.Lock()
	distance := c.state.DistanceTo(report.X, report.Y)
	outcome := c.state.Consume(distance, report.Volume)
	evt := c.consumptionEventLocked(predator.KindWater, report.ID, outcome, report.Volume, distance)
	c.mu.Unlock()

	c.log.Debug("distance to water", "water_id", report.ID, "distance", distance)
	switch outcome {
	case predator.OutcomeConsumed:
		c.log.Info("drank a body of water", "water_id", report.ID, "satiation", evt.Satiation, "cap", c.tuning.SatiationCap)
	case predator.OutcomeSeenButNotConsumed:
		c.log.Info("saw a body of water but was too full to drink it", "water_id", report.ID)
	default:
		c.log.Debug("water was too far", "water_id", report.ID)
	}
	c.settle(evt)
	return outcome
}

func (c *Core) consumptionEventLocked(kind predator.ReportKind, id int, outcome predator.Outcome, amount int, distance float64) predator.Event {
	return predator.Event{
		Type:       predator.EventConsumption,
		Kind:       kind,
		ReporterID: id,
		Outcome:    outcome,
		Amount:     amount,
		Distance:   distance,
		Satiation:  c.state.Satiation,
		Position:   c.state.Position,
		OccurredAt: c.now(),
	}
}

// settle records a consumption decision after the lock is released. Misses
// are counted but not journaled.
func (c *Core) settle(evt predator.Event) {
	if c.metrics != nil {
		c.metrics.RecordOutcome(evt.Kind, evt.Outcome)
	}
	if evt.Outcome == predator.OutcomeNotConsumed {
		return
	}
	c.record(evt)
}

// record queues events for the journal writer. It never waits on journal I/O.
func (c *Core) record(events ...predator.Event) {
	if c.journal == nil || len(events) == 0 {
		return
	}
	c.journal.push(events)
}

// Close stops the journal writer after the queued events are written or ctx
// ends. Stop the mover first; events recorded after Close are dropped.
func (c *Core) Close(ctx context.Context) error {
	if c.journal == nil {
		return nil
	}
	return c.journal.close(ctx)
}

// DroppedJournalEvents counts events discarded because the journal writer
// fell behind or was closed.
func (c *Core) DroppedJournalEvents() uint64 {
	if c.journal == nil {
		return 0
	}
	return c.journal.dropped.Load()
}

func (c *Core) randomPositionLocked() predator.Position {
	return predator.Position{
		X: c.rnd.IntN(c.tuning.AreaSize),
		Y: c.rnd.IntN(c.tuning.AreaSize),
	}
}
