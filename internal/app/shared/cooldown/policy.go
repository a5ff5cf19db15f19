// Package cooldown holds the caller-side sleep policy that rabbit and water
// actors apply after each answer from the wolf.
package cooldown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wolfden/internal/domain/predator"
)

const DefaultRetryDelay = 2 * time.Second

var ErrInvalidScale = errors.New("pause scale must be positive")

// Policy maps each outcome to the pause taken before the next check. A zero
// duration means check again immediately.
type Policy map[predator.Outcome]time.Duration

var RabbitPolicy = Policy{
	predator.OutcomeNotConsumed:        500 * time.Millisecond,
	predator.OutcomeConsumed:           5 * time.Second,
	predator.OutcomeSeenButNotConsumed: 0,
}

var WaterPolicy = Policy{
	predator.OutcomeNotConsumed:        5 * time.Second,
	predator.OutcomeConsumed:           5 * time.Second,
	predator.OutcomeSeenButNotConsumed: 5 * time.Second,
}

// After returns the pause for outcome. Unknown outcomes fall back to the
// longest pause in the policy.
func (p Policy) After(outcome predator.Outcome) time.Duration {
	if d, ok := p[outcome]; ok {
		return d
	}
	var longest time.Duration
	for _, d := range p {
		if d > longest {
			longest = d
		}
	}
	return longest
}

// Scaled multiplies every pause by factor, which must be positive. A zero
// factor would turn the client into a busy loop against the wolf.
func (p Policy) Scaled(factor float64) (Policy, error) {
	if !(factor > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, factor)
	}
	out := make(Policy, len(p))
	for k, d := range p {
		out[k] = time.Duration(float64(d) * factor)
	}
	return out, nil
}

// Sleep waits for d or until ctx ends, returning ctx.Err() in the latter case.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
