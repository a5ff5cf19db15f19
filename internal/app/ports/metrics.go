package ports

import "wolfden/internal/domain/predator"

type OutcomeMetrics interface {
	RecordOutcome(kind predator.ReportKind, outcome predator.Outcome)
	RecordIssuedID()
	RecordDigestion()
}
