package predator

import "time"

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// State is the wolf's mutable record. It carries no locking of its own; the
// owner serializes every access.
type State struct {
	Position           Position `json:"position"`
	Satiation          int      `json:"satiation"`
	SatiationCap       int      `json:"satiation_cap"`
	ProximityThreshold int      `json:"proximity_threshold"`
	LastIssuedID       int      `json:"last_issued_id"`
	Digesting          bool     `json:"digesting"`
}

type PreyReport struct {
	ID       int `json:"id"`
	Weight   int `json:"weight"`
	Distance int `json:"distance"`
}

type WaterReport struct {
	ID     int `json:"id"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Volume int `json:"volume"`
}

type Outcome string

const (
	OutcomeNotConsumed        Outcome = "not_consumed"
	OutcomeConsumed           Outcome = "consumed"
	OutcomeSeenButNotConsumed Outcome = "seen_but_not_consumed"
)

func (o Outcome) Valid() bool {
	switch o {
	case OutcomeNotConsumed, OutcomeConsumed, OutcomeSeenButNotConsumed:
		return true
	default:
		return false
	}
}

type ReportKind string

const (
	KindPrey  ReportKind = "prey"
	KindWater ReportKind = "water"
)

type EventType string

const (
	EventConsumption   EventType = "consumption"
	EventMoved         EventType = "moved"
	EventDigestStarted EventType = "digest_started"
	EventDigested      EventType = "digested"
)

// Event is one entry of the feeding journal.
type Event struct {
	Type       EventType  `json:"type"`
	Kind       ReportKind `json:"kind,omitempty"`
	ReporterID int        `json:"reporter_id,omitempty"`
	Outcome    Outcome    `json:"outcome,omitempty"`
	Amount     int        `json:"amount,omitempty"`
	Distance   float64    `json:"distance"`
	Satiation  int        `json:"satiation"`
	Position   Position   `json:"position"`
	OccurredAt time.Time  `json:"occurred_at"`
}
