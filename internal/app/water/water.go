// Package water is the body-of-water actor: it reports its position and
// volume and lets the wolf compute the distance.
package water

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"wolfden/internal/app/ports"
	"wolfden/internal/app/shared/cooldown"
	"wolfden/internal/domain/predator"
)

const DefaultMaxVolume = 20

type Config struct {
	Wolf       ports.WolfService
	Policy     cooldown.Policy
	RetryDelay time.Duration
	AreaSize   int
	MaxVolume  int
	Rand       *rand.Rand
	Sleep      func(ctx context.Context, d time.Duration) error
	Logger     *slog.Logger
}

type Water struct {
	cfg    Config
	log    *slog.Logger
	report predator.WaterReport
}

func New(cfg Config) *Water {
	if cfg.Policy == nil {
		cfg.Policy = cooldown.WaterPolicy
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = cooldown.DefaultRetryDelay
	}
	if cfg.AreaSize <= 0 {
		cfg.AreaSize = predator.DefaultAreaSize
	}
	if cfg.MaxVolume <= 1 {
		cfg.MaxVolume = DefaultMaxVolume
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.Sleep == nil {
		cfg.Sleep = cooldown.Sleep
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Water{cfg: cfg, log: cfg.Logger}
}

// Report returns the current descriptor; ID is zero until the first check.
func (w *Water) Report() predator.WaterReport {
	return w.report
}

func (w *Water) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome, err := w.Check(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.Warn("wolf call failed, will restart", "err", err, "retry_in", w.cfg.RetryDelay)
			if err := w.cfg.Sleep(ctx, w.cfg.RetryDelay); err != nil {
				return err
			}
			continue
		}
		if err := w.cfg.Sleep(ctx, w.cfg.Policy.After(outcome)); err != nil {
			return err
		}
	}
}

// Check performs one consumption check. A drunk body of water reappears
// elsewhere with a new volume.
func (w *Water) Check(ctx context.Context) (predator.Outcome, error) {
	if w.report.ID == 0 {
		id, err := w.cfg.Wolf.IssueUniqueID(ctx)
		if err != nil {
			return "", fmt.Errorf("issue water id: %w", err)
		}
		w.report.ID = id
		w.respawn()
	}

	outcome, err := w.cfg.Wolf.CheckWater(ctx, w.report)
	if err != nil {
		return "", fmt.Errorf("check water: %w", err)
	}
	switch outcome {
	case predator.OutcomeConsumed:
		w.log.Info("the water was drunk", "water_id", w.report.ID)
		w.respawn()
	case predator.OutcomeSeenButNotConsumed:
		w.log.Info("a wolf approached, but didn't drink", "water_id", w.report.ID)
	default:
		w.log.Info("the water is still", "water_id", w.report.ID)
	}
	return outcome, nil
}

func (w *Water) respawn() {
	w.report.X = w.cfg.Rand.IntN(w.cfg.AreaSize)
	w.report.Y = w.cfg.Rand.IntN(w.cfg.AreaSize)
	w.report.Volume = 1 + w.cfg.Rand.IntN(w.cfg.MaxVolume-1)
	w.log.Info("body of water appeared", "water_id", w.report.ID, "x", w.report.X, "y", w.report.Y, "volume", w.report.Volume)
}
