package inmemory

import (
	"sync"

	"wolfden/internal/domain/predator"
)

type Snapshot struct {
	CheckTotal         uint64            `json:"check_total"`
	Consumed           uint64            `json:"consumed"`
	SeenButNotConsumed uint64            `json:"seen_but_not_consumed"`
	NotConsumed        uint64            `json:"not_consumed"`
	IssuedIDs          uint64            `json:"issued_ids"`
	Digestions         uint64            `json:"digestions"`
	ByKind             map[string]uint64 `json:"by_kind"`
}

type Recorder struct {
	mu         sync.Mutex
	byOutcome  map[predator.Outcome]uint64
	byKind     map[string]uint64
	issued     uint64
	digestions uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byOutcome: map[predator.Outcome]uint64{},
		byKind:    map[string]uint64{},
	}
}

func (r *Recorder) RecordOutcome(kind predator.ReportKind, outcome predator.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOutcome[outcome]++
	r.byKind[string(kind)+":"+string(outcome)]++
}

func (r *Recorder) RecordIssuedID() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued++
}

func (r *Recorder) RecordDigestion() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.digestions++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		Consumed:           r.byOutcome[predator.OutcomeConsumed],
		SeenButNotConsumed: r.byOutcome[predator.OutcomeSeenButNotConsumed],
		NotConsumed:        r.byOutcome[predator.OutcomeNotConsumed],
		IssuedIDs:          r.issued,
		Digestions:         r.digestions,
		ByKind:             make(map[string]uint64, len(r.byKind)),
	}
	out.CheckTotal = out.Consumed + out.SeenButNotConsumed + out.NotConsumed
	for k, v := range r.byKind {
		out.ByKind[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
