package ports

import (
	"context"
	"time"

	"wolfden/internal/domain/predator"
)

type EventQuery struct {
	Limit        int
	Type         predator.EventType
	Kind         predator.ReportKind
	OccurredFrom time.Time
	OccurredTo   time.Time
}

// Match reports whether evt passes every filter set on q. Limit is ignored.
func (q EventQuery) Match(evt predator.Event) bool {
	if q.Type != "" && evt.Type != q.Type {
		return false
	}
	if q.Kind != "" && evt.Kind != q.Kind {
		return false
	}
	if !q.OccurredFrom.IsZero() && evt.OccurredAt.Before(q.OccurredFrom) {
		return false
	}
	if !q.OccurredTo.IsZero() && evt.OccurredAt.After(q.OccurredTo) {
		return false
	}
	return true
}

type EventAppender interface {
	Append(ctx context.Context, events []predator.Event) error
}

// EventRepository lists newest first and returns ErrNotFound when nothing matches.
type EventRepository interface {
	EventAppender
	List(ctx context.Context, q EventQuery) ([]predator.Event, error)
}
