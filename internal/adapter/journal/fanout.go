package journal

import (
	"context"
	"errors"
	"fmt"

	"wolfden/internal/app/ports"
	"wolfden/internal/domain/predator"
)

// Fanout writes to Primary and then to every mirror. Reads go to Primary only.
// A mirror failure never skips the remaining mirrors.
type Fanout struct {
	Primary ports.EventRepository
	Mirrors []ports.EventAppender
}

func (f Fanout) Append(ctx context.Context, events []predator.Event) error {
	var errs []error
	if err := f.Primary.Append(ctx, events); err != nil {
		errs = append(errs, fmt.Errorf("primary journal: %w", err))
	}
	for i, m := range f.Mirrors {
		if err := m.Append(ctx, events); err != nil {
			errs = append(errs, fmt.Errorf("journal mirror %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) List(ctx context.Context, q ports.EventQuery) ([]predator.Event, error) {
	return f.Primary.List(ctx, q)
}

var _ ports.EventRepository = Fanout{}
