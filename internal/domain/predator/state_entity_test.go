package predator

import (
	"math"
	"testing"
)

func TestConsume_ProximityBoundaryIsStrict(t *testing.T) {
	s := NewState(DefaultTuning())

	if got := s.Consume(5, 10); got != OutcomeNotConsumed {
		t.Fatalf("distance == threshold: got %s want %s", got, OutcomeNotConsumed)
	}
	if s.Satiation != 0 {
		t.Fatalf("expected satiation untouched, got %d", s.Satiation)
	}
	if got := s.Consume(4, 10); got != OutcomeConsumed {
		t.Fatalf("distance == threshold-1: got %s want %s", got, OutcomeConsumed)
	}
	if s.Satiation != 10 {
		t.Fatalf("expected satiation 10, got %d", s.Satiation)
	}
}

func TestConsume_CapIsGateNotCeiling(t *testing.T) {
	s := NewState(DefaultTuning())

	if got := s.Consume(2, 30); got != OutcomeConsumed {
		t.Fatalf("first: got %s", got)
	}
	if got := s.Consume(2, 80); got != OutcomeConsumed {
		t.Fatalf("second: got %s", got)
	}
	if s.Satiation != 110 {
		t.Fatalf("expected overshoot to 110, got %d", s.Satiation)
	}
	if got := s.Consume(0, 1); got != OutcomeSeenButNotConsumed {
		t.Fatalf("third: got %s want %s", got, OutcomeSeenButNotConsumed)
	}
	if s.Satiation != 110 {
		t.Fatalf("refused consumption changed satiation to %d", s.Satiation)
	}
}

func TestConsume_OutOfRangeWinsOverFull(t *testing.T) {
	s := NewState(DefaultTuning())
	s.Satiation = 100

	if got := s.Consume(12, 5); got != OutcomeNotConsumed {
		t.Fatalf("expected not_consumed for far report while full, got %s", got)
	}
}

func TestDistanceTo_Euclidean(t *testing.T) {
	s := State{Position: Position{X: 1, Y: 2}}

	if got := s.DistanceTo(4, 6); math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected 5, got %v", got)
	}
	if got := s.DistanceTo(1, 2); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestNextID_Monotonic(t *testing.T) {
	s := State{}
	for want := 1; want <= 3; want++ {
		if got := s.NextID(); got != want {
			t.Fatalf("NextID()=%d want %d", got, want)
		}
	}
}

func TestDigest_ResetsToZero(t *testing.T) {
	s := State{Satiation: 117, SatiationCap: 100, Digesting: true}
	s.Digest()
	if s.Satiation != 0 || s.Digesting {
		t.Fatalf("expected reset state, got %+v", s)
	}
}
