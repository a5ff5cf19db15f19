package httpadapter

import (
	"time"

	"github.com/gocarina/gocsv"

	"wolfden/internal/domain/predator"
)

type eventCSVRow struct {
	OccurredAt string  `csv:"occurred_at"`
	Type       string  `csv:"type"`
	Kind       string  `csv:"kind"`
	ReporterID int     `csv:"reporter_id"`
	Outcome    string  `csv:"outcome"`
	Amount     int     `csv:"amount"`
	Distance   float64 `csv:"distance"`
	Satiation  int     `csv:"satiation"`
	X          int     `csv:"x"`
	Y          int     `csv:"y"`
}

func marshalEventsCSV(events []predator.Event) ([]byte, error) {
	rows := make([]*eventCSVRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, &eventCSVRow{
			OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339Nano),
			Type:       string(e.Type),
			Kind:       string(e.Kind),
			ReporterID: e.ReporterID,
			Outcome:    string(e.Outcome),
			Amount:     e.Amount,
			Distance:   e.Distance,
			Satiation:  e.Satiation,
			X:          e.Position.X,
			Y:          e.Position.Y,
		})
	}
	return gocsv.MarshalBytes(&rows)
}
