package ports

import (
	"testing"
	"time"

	"wolfden/internal/domain/predator"
)

func TestEventQueryMatch(t *testing.T) {
	at := time.Unix(100, 0)
	evt := predator.Event{Type: predator.EventConsumption, Kind: predator.KindWater, OccurredAt: at}

	cases := []struct {
		name string
		q    EventQuery
		want bool
	}{
		{name: "empty", q: EventQuery{}, want: true},
		{name: "type match", q: EventQuery{Type: predator.EventConsumption}, want: true},
		{name: "type mismatch", q: EventQuery{Type: predator.EventMoved}, want: false},
		{name: "kind mismatch", q: EventQuery{Kind: predator.KindPrey}, want: false},
		{name: "inside window", q: EventQuery{OccurredFrom: time.Unix(50, 0), OccurredTo: time.Unix(100, 0)}, want: true},
		{name: "before window", q: EventQuery{OccurredFrom: time.Unix(101, 0)}, want: false},
		{name: "after window", q: EventQuery{OccurredTo: time.Unix(99, 0)}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.q.Match(evt); got != tc.want {
				t.Fatalf("Match()=%v want %v", got, tc.want)
			}
		})
	}
}
