package replay

import (
	"context"
	"errors"
	"time"

	"wolfden/internal/app/ports"
	"wolfden/internal/domain/predator"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const MaxLimit = 1000

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	q, err := toQuery(req)
	if err != nil {
		return Response{}, err
	}
	events, err := u.Events.List(ctx, q)
	if err != nil {
		return Response{}, err
	}
	return Response{Events: events, Summary: summarize(events)}, nil
}

func toQuery(req Request) (ports.EventQuery, error) {
	if req.Limit < 0 || req.OccurredFrom < 0 || req.OccurredTo < 0 {
		return ports.EventQuery{}, ErrInvalidRequest
	}
	if req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo {
		return ports.EventQuery{}, ErrInvalidRequest
	}
	q := ports.EventQuery{
		Limit: req.Limit,
		Type:  predator.EventType(req.Type),
		Kind:  predator.ReportKind(req.Kind),
	}
	if q.Limit == 0 || q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	switch q.Type {
	case "", predator.EventConsumption, predator.EventMoved, predator.EventDigestStarted, predator.EventDigested:
	default:
		return ports.EventQuery{}, ErrInvalidRequest
	}
	switch q.Kind {
	case "", predator.KindPrey, predator.KindWater:
	default:
		return ports.EventQuery{}, ErrInvalidRequest
	}
	if req.OccurredFrom > 0 {
		q.OccurredFrom = time.Unix(req.OccurredFrom, 0)
	}
	if req.OccurredTo > 0 {
		q.OccurredTo = time.Unix(req.OccurredTo, 0)
	}
	return q, nil
}

// summarize expects events newest first.
func summarize(events []predator.Event) Summary {
	s := Summary{}
	if len(events) > 0 {
		s.LatestSatiation = events[0].Satiation
		s.LatestPosition = events[0].Position
	}
	for _, evt := range events {
		switch evt.Type {
		case predator.EventConsumption:
			switch evt.Outcome {
			case predator.OutcomeConsumed:
				s.Consumed++
			case predator.OutcomeSeenButNotConsumed:
				s.SeenButNotConsumed++
			}
		case predator.EventDigested:
			s.Digestions++
		case predator.EventMoved:
			s.Moves++
		}
	}
	return s
}
