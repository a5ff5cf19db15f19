package wolf

import (
	"context"

	"wolfden/internal/app/ports"
	"wolfden/internal/domain/predator"
)

// Service adapts a Core to ports.WolfService for in-process callers.
type Service struct {
	Core *Core
}

func (s Service) IssueUniqueID(ctx context.Context) (int, error) {
	return s.Core.IssueUniqueID(ctx), nil
}

func (s Service) CheckPrey(ctx context.Context, report predator.PreyReport) (predator.Outcome, error) {
	return s.Core.CheckPrey(ctx, report), nil
}

func (s Service) CheckWater(ctx context.Context, report predator.WaterReport) (predator.Outcome, error) {
	return s.Core.CheckWater(ctx, report), nil
}

var _ ports.WolfService = Service{}
