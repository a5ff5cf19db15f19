package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	httpadapter "wolfden/internal/adapter/http"
	"wolfden/internal/adapter/journal"
	metricsinmem "wolfden/internal/adapter/metrics/inmemory"
	gormrepo "wolfden/internal/adapter/repo/gorm"
	"wolfden/internal/adapter/repo/memory"
	sqliterepo "wolfden/internal/adapter/repo/sqlite"
	"wolfden/internal/app/ports"
	"wolfden/internal/app/replay"
	"wolfden/internal/app/wolf"
	"wolfden/internal/config"
	"wolfden/internal/logging"
	"wolfden/migrations"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	configPath := flag.String("config", "", "Path to wolfden.yaml (empty = defaults and env)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(os.Stdout, cfg.Log)
	slog.SetDefault(logger)

	events, closeJournal := mustBuildJournal(cfg.Journal, logger)
	defer closeJournal()
	kpiRecorder := metricsinmem.NewRecorder()

	core := wolf.NewCore(wolf.Config{
		Tuning:  cfg.Wolf,
		Journal: events,
		Metrics: kpiRecorder,
		Logger:  logger,
	})
	mover := core.StartMover(context.Background())

	h := httpadapter.Handler{
		Wolf:     wolf.Service{Core: core},
		ReplayUC: replay.UseCase{Events: events},
		KPI:      kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	h.RegisterRoutes(s.Engine)
	s.OnShutdown = append(s.OnShutdown, func(ctx context.Context) {
		mover.Stop()
		if err := core.Close(ctx); err != nil {
			logger.Warn("journal writer did not drain", "err", err, "dropped", core.DroppedJournalEvents())
		}
	})

	logger.Info("wolfden server listening", "addr", cfg.Server.Addr, "journal", cfg.Journal.Driver)
	s.Spin()
}

// mustBuildJournal opens the configured journal and, when an archive dir is
// set, mirrors every append into the compressed archive.
func mustBuildJournal(cfg config.Journal, logger *slog.Logger) (ports.EventRepository, func()) {
	var (
		primary ports.EventRepository
		closers []func() error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := gormrepo.OpenPostgres(cfg.DSN)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		if cfg.Migrate {
			if _, err := gormrepo.ApplyMigrations(context.Background(), db, migrations.FS, logger); err != nil {
				log.Fatalf("apply migrations: %v", err)
			}
		}
		primary = gormrepo.NewEventRepo(db)
	case config.DriverSQLite:
		repo, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("open sqlite journal: %v", err)
		}
		primary = repo
		closers = append(closers, repo.Close)
	default:
		primary = memory.NewEventRepo(memory.NewStore(cfg.MaxEvents))
	}

	if cfg.ArchiveDir == "" {
		return primary, closeAll(closers, logger)
	}
	archive := journal.NewArchive(cfg.ArchiveDir, "")
	closers = append(closers, archive.Close)
	return journal.Fanout{Primary: primary, Mirrors: []ports.EventAppender{archive}}, closeAll(closers, logger)
}

func closeAll(closers []func() error, logger *slog.Logger) func() {
	return func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("close journal", "err", err)
			}
		}
	}
}
