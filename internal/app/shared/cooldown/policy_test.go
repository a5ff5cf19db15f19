package cooldown

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"wolfden/internal/domain/predator"
)

func TestPolicyAfter(t *testing.T) {
	if got := RabbitPolicy.After(predator.OutcomeSeenButNotConsumed); got != 0 {
		t.Fatalf("rabbit should run away immediately, got %s", got)
	}
	if got := RabbitPolicy.After(predator.OutcomeNotConsumed); got != 500*time.Millisecond {
		t.Fatalf("rabbit miss delay: got %s", got)
	}
	if got := WaterPolicy.After(predator.OutcomeSeenButNotConsumed); got != 5*time.Second {
		t.Fatalf("water seen delay: got %s", got)
	}
	if got := RabbitPolicy.After(predator.Outcome("bogus")); got != 5*time.Second {
		t.Fatalf("unknown outcome should use longest pause, got %s", got)
	}
}

func TestPolicyScaled(t *testing.T) {
	got, err := WaterPolicy.Scaled(0.1)
	if err != nil {
		t.Fatalf("Scaled: %v", err)
	}
	if got[predator.OutcomeConsumed] != 500*time.Millisecond {
		t.Fatalf("expected 500ms, got %s", got[predator.OutcomeConsumed])
	}
	if WaterPolicy[predator.OutcomeConsumed] != 5*time.Second {
		t.Fatalf("Scaled must not mutate the source policy")
	}
}

func TestPolicyScaled_RejectsNonPositive(t *testing.T) {
	for _, factor := range []float64{0, -1, math.NaN()} {
		if _, err := RabbitPolicy.Scaled(factor); !errors.Is(err, ErrInvalidScale) {
			t.Fatalf("Scaled(%v): expected ErrInvalidScale, got %v", factor, err)
		}
	}
}

func TestSleep_HonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := Sleep(context.Background(), 0); err != nil {
		t.Fatalf("zero sleep: %v", err)
	}
}
