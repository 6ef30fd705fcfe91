package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kingpin"

	"kastelo.dev/secop2"
	"kastelo.dev/secop2/excel"
)

func main() {
	process := kingpin.Flag("proceso", "Purchase process ids, comma separated").String()
	entity := kingpin.Flag("entidad", "Entity name terms, comma separated").String()
	department := kingpin.Flag("departamento", "Department terms, comma separated").String()
	city := kingpin.Flag("ciudad", "City terms, comma separated").String()
	modality := kingpin.Flag("modalidad", "Contracting modality terms, comma separated").String()
	status := kingpin.Flag("estado", "Process status, exact").String()
	opening := kingpin.Flag("apertura", "Opening status, exact").String()
	start := kingpin.Flag("desde", "Publication date lower bound (2006-01-02)").String()
	end := kingpin.Flag("hasta", "Publication date upper bound (2006-01-02)").String()
	max := kingpin.Flag("max", "Record cap").Default("50000").Int()
	output := kingpin.Flag("output", "Output file, default is a timestamped name").Short('o').String()

	cmdXLSX := kingpin.Command("xlsx", "Export the query result as a styled workbook")
	cmdCSV := kingpin.Command("csv", "Export the query result as CSV")
	cmd := kingpin.Parse()

	for _, fecha := range []string{*start, *end} {
		if fecha == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", fecha); err != nil {
			kingpin.Fatalf("bad date %q, use the form 2006-01-02", fecha)
		}
	}
	if *max <= 0 {
		kingpin.Fatalf("--max must be positive")
	}

	filter := secop2.Filter{
		ProcessID:     *process,
		Entity:        *entity,
		Department:    *department,
		City:          *city,
		Modality:      *modality,
		Status:        *status,
		OpeningStatus: *opening,
		StartDate:     *start,
		EndDate:       *end,
	}

	table, err := secop2.NewClient().Fetch(context.Background(), filter.Where(), *max)
	if err != nil {
		slog.Error("Error fetching records", "error", err)
		os.Exit(1)
	}
	if len(table.Rows) == 0 {
		slog.Error("No records matched the filter")
		os.Exit(1)
	}

	stamp := time.Now().Format("20060102_150405")
	switch cmd {
	case cmdXLSX.FullCommand():
		name := *output
		if name == "" {
			name = fmt.Sprintf("secop2_reporte_%s.xlsx", stamp)
		}
		bs, err := excel.ReportXLSX(table)
		if err != nil {
			slog.Error("Error creating Excel file", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(name, bs, 0o644); err != nil {
			slog.Error("Error writing Excel file", "error", err)
			os.Exit(1)
		}
		slog.Info("Wrote report", "file", name, "rows", len(table.Rows))

	case cmdCSV.FullCommand():
		name := *output
		if name == "" {
			name = fmt.Sprintf("secop2_reporte_%s.csv", stamp)
		}
		fd, err := os.Create(name)
		if err != nil {
			slog.Error("Error creating CSV file", "error", err)
			os.Exit(1)
		}
		if err := table.WriteCSV(fd); err != nil {
			slog.Error("Error writing CSV file", "error", err)
			os.Exit(1)
		}
		if err := fd.Close(); err != nil {
			slog.Error("Error closing CSV file", "error", err)
			os.Exit(1)
		}
		slog.Info("Wrote export", "file", name, "rows", len(table.Rows))
	}
}
