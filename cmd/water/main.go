package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"wolfden/internal/adapter/wolfclient"
	"wolfden/internal/app/shared/cooldown"
	"wolfden/internal/app/water"
	"wolfden/internal/config"
	"wolfden/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to wolfden.yaml (empty = defaults and env)")
	pace := flag.Float64("pace", 1, "Multiplier for the pauses between reports")
	flag.Parse()

	policy, err := cooldown.WaterPolicy.Scaled(*pace)
	if err != nil {
		log.Fatalf("-pace: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(os.Stdout, cfg.Log).With("actor", "water")

	wolfAPI, err := wolfclient.New(cfg.Client.ServerURL, cfg.Client.Timeout)
	if err != nil {
		log.Fatalf("wolf client: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := water.New(water.Config{
		Wolf:       wolfAPI,
		Policy:     policy,
		RetryDelay: cfg.Client.RetryDelay,
		AreaSize:   cfg.Wolf.AreaSize,
		Logger:     logger,
	})
	logger.Info("water source started", "wolf", cfg.Client.ServerURL)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("water: %v", err)
	}
}
