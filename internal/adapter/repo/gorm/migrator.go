package gormrepo

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

const migrationsTable = "schema_migrations"

// pendingMigrations lists the *.sql files of fsys, ordered by name, whose
// version is not in applied.
func pendingMigrations(fsys fs.FS, applied map[string]bool) ([]string, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	out := names[:0]
	for _, name := range names {
		if !applied[migrationVersion(name)] {
			out = append(out, name)
		}
	}
	return out, nil
}

func migrationVersion(name string) string {
	return strings.TrimSuffix(path.Base(name), ".sql")
}

// ApplyMigrations brings the feeding journal schema up to date and returns the
// versions it applied. Each file runs in its own transaction together with
// its schema_migrations row.
func ApplyMigrations(ctx context.Context, db *gorm.DB, fsys fs.FS, log *slog.Logger) ([]string, error) {
	if log == nil {
		log = slog.Default()
	}
	db = db.WithContext(ctx)
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationsTable + ` (
  version TEXT PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", migrationsTable, err)
	}

	var done []string
	if err := db.Table(migrationsTable).Pluck("version", &done).Error; err != nil {
		return nil, fmt.Errorf("read %s: %w", migrationsTable, err)
	}
	applied := make(map[string]bool, len(done))
	for _, v := range done {
		applied[v] = true
	}

	pending, err := pendingMigrations(fsys, applied)
	if err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(pending))
	for _, name := range pending {
		version := migrationVersion(name)
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return versions, fmt.Errorf("read migration %s: %w", name, err)
		}
		started := time.Now()
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("apply migration %s: %w", version, err)
			}
			return tx.Exec(`INSERT INTO `+migrationsTable+`(version, applied_at) VALUES (?, ?)`, version, time.Now()).Error
		})
		if err != nil {
			return versions, err
		}
		log.Info("applied journal migration", "version", version, "took", time.Since(started))
		versions = append(versions, version)
	}
	if len(versions) == 0 {
		log.Debug("journal schema up to date", "known", len(applied))
	}
	return versions, nil
}
