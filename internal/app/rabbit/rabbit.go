// Package rabbit is the prey actor: it reports a self-estimated distance and
// its weight to the wolf until cancelled.
package rabbit

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

const DefaultMaxWeight = 20

type Config struct {
	Wolf       ports.WolfService
	Policy     cooldown.Policy
	RetryDelay time.Duration
	AreaSize   int
	MaxWeight  int
	Rand       *rand.Rand
	Sleep      func(ctx context.Context, d time.Duration) error
	Logger     *slog.Logger
}

type Rabbit struct {
	cfg    Config
	log    *slog.Logger
	id     int
	weight int
	eaten  bool
}

func New(cfg Config) *Rabbit {
	if cfg.Policy == nil {
		cfg.Policy = cooldown.RabbitPolicy
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = cooldown.DefaultRetryDelay
	}
	if cfg.AreaSize <= 0 {
		cfg.AreaSize = predator.DefaultAreaSize
	}
	if cfg.MaxWeight <= 1 {
		cfg.MaxWeight = DefaultMaxWeight
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
	return &Rabbit{cfg: cfg, log: cfg.Logger}
}

func (r *Rabbit) ID() int {
	return r.id
}

// Run hops until ctx ends. A failed call is retried after RetryDelay and the
// already-issued ID is kept.
func (r *Rabbit) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome, err := r.Hop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.log.Warn("wolf call failed, will restart", "err", err, "retry_in", r.cfg.RetryDelay)
			if err := r.cfg.Sleep(ctx, r.cfg.RetryDelay); err != nil {
				return err
			}
			continue
		}
		if err := r.cfg.Sleep(ctx, r.cfg.Policy.After(outcome)); err != nil {
			return err
		}
	}
}

// Hop performs one consumption check.
func (r *Rabbit) Hop(ctx context.Context) (predator.Outcome, error) {
	if r.id == 0 {
		id, err := r.cfg.Wolf.IssueUniqueID(ctx)
		if err != nil {
			return "", fmt.Errorf("issue rabbit id: %w", err)
		}
		r.id = id
		r.reborn()
	} else if r.eaten {
		r.reborn()
	}

	report := predator.PreyReport{
		ID:       r.id,
		Weight:   r.weight,
		Distance: r.cfg.Rand.IntN(r.cfg.AreaSize),
	}
	r.log.Info("hopped", "rabbit_id", r.id, "distance_to_wolf", report.Distance)

	outcome, err := r.cfg.Wolf.CheckPrey(ctx, report)
	if err != nil {
		return "", fmt.Errorf("check prey: %w", err)
	}
	switch outcome {
	case predator.OutcomeConsumed:
		r.eaten = true
		r.log.Info("the rabbit was eaten", "rabbit_id", r.id)
	case predator.OutcomeSeenButNotConsumed:
		r.log.Info("detected, but managed to run away", "rabbit_id", r.id)
	default:
		r.log.Info("undetected", "rabbit_id", r.id)
	}
	return outcome, nil
}

func (r *Rabbit) reborn() {
	r.weight = 1 + r.cfg.Rand.IntN(r.cfg.MaxWeight-1)
	r.eaten = false
	r.log.Info("a rabbit is born", "rabbit_id", r.id, "weight", r.weight)
}
