package gormrepo

import (
	"context"

	"wolfden/internal/adapter/repo/gorm/model"
	"wolfden/internal/app/ports"
	"wolfden/internal/domain/predator"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, events []predator.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.FeedingEvent, 0, len(events))
	for _, e := range events {
		rows = append(rows, toRow(e))
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r EventRepo) List(ctx context.Context, q ports.EventQuery) ([]predator.Event, error) {
	rows := []model.FeedingEvent{}
	query := r.db.WithContext(ctx).
		Where(&model.FeedingEvent{Type: string(q.Type), Kind: string(q.Kind)}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if !q.OccurredFrom.IsZero() {
		query = query.Where("occurred_at >= ?", q.OccurredFrom)
	}
	if !q.OccurredTo.IsZero() {
		query = query.Where("occurred_at <= ?", q.OccurredTo)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]predator.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

func toRow(e predator.Event) model.FeedingEvent {
	return model.FeedingEvent{
		Type:       string(e.Type),
		Kind:       string(e.Kind),
		ReporterID: int64(e.ReporterID),
		Outcome:    string(e.Outcome),
		Amount:     int64(e.Amount),
		Distance:   e.Distance,
		Satiation:  int64(e.Satiation),
		X:          int64(e.Position.X),
		Y:          int64(e.Position.Y),
		OccurredAt: e.OccurredAt,
	}
}

func fromRow(row model.FeedingEvent) predator.Event {
	return predator.Event{
		Type:       predator.EventType(row.Type),
		Kind:       predator.ReportKind(row.Kind),
		ReporterID: int(row.ReporterID),
		Outcome:    predator.Outcome(row.Outcome),
		Amount:     int(row.Amount),
		Distance:   row.Distance,
		Satiation:  int(row.Satiation),
		Position:   predator.Position{X: int(row.X), Y: int(row.Y)},
		OccurredAt: row.OccurredAt,
	}
}

var _ ports.EventRepository = EventRepo{}
