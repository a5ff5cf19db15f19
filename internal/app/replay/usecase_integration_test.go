package replay

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"wolfden/internal/adapter/repo/memory"
	"wolfden/internal/app/wolf"
	"wolfden/internal/domain/predator"
)

func TestUseCase_E2E_ReplaysWolfDecisions(t *testing.T) {
	repo := memory.NewEventRepo(memory.NewStore(0))
	core := wolf.NewCore(wolf.Config{
		Tuning:  predator.Tuning{SatiationCap: 20},
		Journal: repo,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ctx := context.Background()

	core.CheckPrey(ctx, predator.PreyReport{ID: 1, Weight: 15, Distance: 1})
	core.CheckPrey(ctx, predator.PreyReport{ID: 2, Weight: 15, Distance: 1})
	core.CheckPrey(ctx, predator.PreyReport{ID: 3, Weight: 15, Distance: 1})
	core.CheckPrey(ctx, predator.PreyReport{ID: 4, Weight: 15, Distance: 20})
	if err := core.Close(ctx); err != nil {
		t.Fatalf("close core: %v", err)
	}

	out, err := UseCase{Events: repo}.Execute(ctx, Request{Kind: "prey"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Events) != 3 {
		t.Fatalf("expected 3 journaled decisions, got %d", len(out.Events))
	}
	if out.Summary.Consumed != 2 || out.Summary.SeenButNotConsumed != 1 {
		t.Fatalf("unexpected summary: %+v", out.Summary)
	}
	if out.Summary.LatestSatiation != 30 {
		t.Fatalf("expected latest satiation 30, got %d", out.Summary.LatestSatiation)
	}
}
