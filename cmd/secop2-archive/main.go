package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/alecthomas/kingpin"
	_ "github.com/lib/pq"

	"kastelo.dev/secop2"
)

func main() {
	dsn := kingpin.Flag("dsn", "Postgres connection string").Envar("SECOP2_DSN").Required().String()
	table := kingpin.Flag("table", "Destination table name").Default("secop2_snapshot").String()
	where := kingpin.Flag("where", "SoQL $where predicate, empty for all records").String()
	max := kingpin.Flag("max", "Record cap").Default("50000").Int()
	kingpin.Parse()

	if *max <= 0 {
		kingpin.Fatalf("--max must be positive")
	}

	db, err := sql.Open("postgres", *dsn)
	if err != nil {
		slog.Error("Error opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	result, err := secop2.NewClient().Fetch(context.Background(), *where, *max)
	if err != nil {
		slog.Error("Error fetching records", "error", err)
		os.Exit(1)
	}
	if len(result.Rows) == 0 {
		slog.Error("No records matched the filter")
		os.Exit(1)
	}

	if err := secop2.Archive(db, *table, result); err != nil {
		slog.Error("Error archiving records", "error", err)
		os.Exit(1)
	}
	slog.Info("Archived snapshot", "table", *table, "rows", len(result.Rows))
}
