package memory

import (
	"context"
	"sort"

	"wolfden/internal/app/ports"
	"wolfden/internal/domain/predator"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, events []predator.Event) error {
	if len(events) == 0 {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events = append(r.store.events, events...)
	if over := len(r.store.events) - r.store.maxEvents; over > 0 {
		r.store.events = append([]predator.Event(nil), r.store.events[over:]...)
	}
	return nil
}

// List orders by OccurredAt, newest first. Events stamped at the same
// instant keep newest-arrival-first order.
func (r EventRepo) List(_ context.Context, q ports.EventQuery) ([]predator.Event, error) {
	r.store.mu.RLock()
	out := make([]predator.Event, 0)
	for i := len(r.store.events) - 1; i >= 0; i-- {
		if evt := r.store.events[i]; q.Match(evt) {
			out = append(out, evt)
		}
	}
	r.store.mu.RUnlock()

	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

var _ ports.EventRepository = EventRepo{}
