// Command modelgen regenerates the GORM models of the wolfden journal tables
// from a migrated Postgres database.
package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

const defaultTables = "feeding_events"

func main() {
	var dsn, out, tables string
	flag.StringVar(&dsn, "dsn", os.Getenv("WOLFDEN_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.StringVar(&tables, "tables", defaultTables, "comma-separated tables to generate")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	names := parseTables(tables)
	if dsn == "" || len(names) == 0 {
		log.Error("missing --dsn/WOLFDEN_DB_DSN or --tables")
		os.Exit(2)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Error("open postgres", "err", err)
		os.Exit(1)
	}

	// Models only: the journal repos build their queries by hand.
	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext,
	})
	g.UseDB(db)
	for _, name := range names {
		g.GenerateModel(name)
	}
	g.Execute()

	log.Info("generated journal models", "out", out, "tables", names)
}

// parseTables splits a comma list, trimming blanks and repeats.
func parseTables(raw string) []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
