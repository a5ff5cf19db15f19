package predator

import "gonum.org/v1/gonum/floats"

func NewState(t Tuning) State {
	t = t.Normalized()
	return State{
		SatiationCap:       t.SatiationCap,
		ProximityThreshold: t.ProximityThreshold,
	}
}

// Full reports whether the consumption gate is closed.
func (s State) Full() bool {
	return s.Satiation >= s.SatiationCap
}

// InRange uses strict inequality: a distance equal to the threshold is out of range.
func (s State) InRange(distance float64) bool {
	return distance < float64(s.ProximityThreshold)
}

// DistanceTo is the Euclidean distance from the wolf to (x, y).
func (s State) DistanceTo(x, y int) float64 {
	return floats.Distance(
		[]float64{float64(s.Position.X), float64(s.Position.Y)},
		[]float64{float64(x), float64(y)},
		2,
	)
}

// Consume applies one consumption decision. The cap is checked before the
// amount is added, so an accepted amount is taken whole and Satiation may end
// above SatiationCap.
func (s *State) Consume(distance float64, amount int) Outcome {
	if !s.InRange(distance) {
		return OutcomeNotConsumed
	}
	if s.Full() {
		return OutcomeSeenButNotConsumed
	}
	s.Satiation += amount
	return OutcomeConsumed
}

func (s *State) NextID() int {
	s.LastIssuedID++
	return s.LastIssuedID
}

// Digest ends a digestion transition.
func (s *State) Digest() {
	s.Satiation = 0
	s.Digesting = false
}
