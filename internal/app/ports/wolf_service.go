package ports

import (
	"context"

	"wolfden/internal/domain/predator"
)

// WolfService is what rabbit and water actors call. Every method is safe to
// retry after a lost response.
type WolfService interface {
	IssueUniqueID(ctx context.Context) (int, error)
	CheckPrey(ctx context.Context, report predator.PreyReport) (predator.Outcome, error)
	CheckWater(ctx context.Context, report predator.WaterReport) (predator.Outcome, error)
}
