package replay

import "wolfden/internal/domain/predator"

type Request struct {
	Limit        int
	Type         string
	Kind         string
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events  []predator.Event `json:"events"`
	Summary Summary          `json:"summary"`
}

// Summary is derived from the returned events only, not from the live wolf.
type Summary struct {
	LatestSatiation    int               `json:"latest_satiation"`
	LatestPosition     predator.Position `json:"latest_position"`
	Consumed           int               `json:"consumed"`
	SeenButNotConsumed int               `json:"seen_but_not_consumed"`
	Digestions         int               `json:"digestions"`
	Moves              int               `json:"moves"`
}
