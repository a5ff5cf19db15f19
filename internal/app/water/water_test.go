package water

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"wolfden/internal/app/wolf"
	"wolfden/internal/domain/predator"
)

type scriptedWolf struct {
	nextID   int
	outcomes []predator.Outcome
	err      error
	reports  []predator.WaterReport
}

func (w *scriptedWolf) IssueUniqueID(_ context.Context) (int, error) {
	w.nextID++
	return w.nextID, nil
}

func (w *scriptedWolf) CheckPrey(_ context.Context, _ predator.PreyReport) (predator.Outcome, error) {
	return "", errors.New("water is not prey")
}

func (w *scriptedWolf) CheckWater(_ context.Context, r predator.WaterReport) (predator.Outcome, error) {
	w.reports = append(w.reports, r)
	if w.err != nil {
		err := w.err
		w.err = nil
		return "", err
	}
	i := len(w.reports) - 1
	if i < len(w.outcomes) {
		return w.outcomes[i], nil
	}
	return predator.OutcomeNotConsumed, nil
}

func newTestWater(w *scriptedWolf, sleep func(context.Context, time.Duration) error) *Water {
	return New(Config{
		Wolf:   w,
		Rand:   rand.New(rand.NewPCG(5, 6)),
		Sleep:  sleep,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestCheck_RespawnsOnlyAfterBeingDrunk(t *testing.T) {
	w := &scriptedWolf{outcomes: []predator.Outcome{
		predator.OutcomeSeenButNotConsumed,
		predator.OutcomeConsumed,
		predator.OutcomeNotConsumed,
	}}
	water := newTestWater(w, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := water.Check(ctx); err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
	}
	if w.reports[0] != w.reports[1] {
		t.Fatalf("water must not move before being drunk: %+v vs %+v", w.reports[0], w.reports[1])
	}
	for _, rep := range w.reports {
		if rep.ID != 1 {
			t.Fatalf("expected id 1 throughout, got %d", rep.ID)
		}
		if rep.X < 0 || rep.X >= predator.DefaultAreaSize || rep.Y < 0 || rep.Y >= predator.DefaultAreaSize {
			t.Fatalf("position out of range: %+v", rep)
		}
		if rep.Volume < 1 || rep.Volume >= DefaultMaxVolume {
			t.Fatalf("volume out of range: %d", rep.Volume)
		}
	}
	if water.Report().ID != 1 {
		t.Fatalf("expected report id 1, got %d", water.Report().ID)
	}
}

func TestRun_PausesAndRetries(t *testing.T) {
	w := &scriptedWolf{err: errors.New("timeout")}
	ctx, cancel := context.WithCancel(context.Background())
	var pauses []time.Duration
	sleep := func(ctx context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		if len(pauses) == 3 {
			cancel()
			return ctx.Err()
		}
		return nil
	}

	err := newTestWater(w, sleep).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	want := []time.Duration{2 * time.Second, 5 * time.Second, 5 * time.Second}
	for i, d := range want {
		if pauses[i] != d {
			t.Fatalf("pause %d: got %s want %s", i, pauses[i], d)
		}
	}
	if w.nextID != 1 {
		t.Fatalf("expected id issued once, got %d", w.nextID)
	}
}

func TestWater_DrunkByRealWolfStandingOnIt(t *testing.T) {
	core := wolf.NewCore(wolf.Config{
		Tuning: predator.Tuning{ProximityThreshold: 100},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	water := New(Config{
		Wolf:   wolf.Service{Core: core},
		Rand:   rand.New(rand.NewPCG(7, 8)),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	got, err := water.Check(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if got != predator.OutcomeConsumed {
		t.Fatalf("expected consumed within a 100-unit threshold, got %s", got)
	}
	if core.Snapshot().Satiation < 1 {
		t.Fatalf("expected wolf satiation to grow")
	}
}
