// Command import loads a BS year table into the SQLite database.
//
// Usage:
//
//	go run ./cmd/import -csv data/bs_years.csv -db data/sambat.db
//
// Without -csv the table embedded in the binary is imported.
//
// This tool:
// 1. Parses and validates the CSV (contiguous years, chained start dates)
// 2. Creates/opens the SQLite database
// 3. Runs migrations to ensure schema is current
// 4. Upserts every year in a single transaction
// 5. Rebuilds the calendar table from the database to verify it
//
// The import is idempotent: existing years are replaced.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/sambat-api/internal/calendar"
	"github.com/zapponejosh/sambat-api/internal/database"
)

func main() {
	// Parse command line flags
	csvPath := flag.String("csv", "", "Path to BS year CSV (default: embedded table)")
	dbPath := flag.String("db", "data/sambat.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Run import
	if err := run(*csvPath, *dbPath, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(csvPath, dbPath string, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and validate CSV
	// =========================================================================
	rows, err := readRows(csvPath, logger)
	if err != nil {
		return err
	}

	// Validate before touching the database.
	if _, err := calendar.NewTable(rows, nil); err != nil {
		return err
	}

	logger.Info("parsed years",
		slog.Int("years", len(rows)),
		slog.Int("first_year", rows[0].Year),
		slog.Int("last_year", rows[len(rows)-1].Year),
	)

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Import data in a transaction
	// =========================================================================
	logger.Info("starting import")

	imported, err := db.ImportRows(ctx, rows)
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	// =========================================================================
	// Step 4: Verify import
	// =========================================================================
	table, err := db.LoadTable(ctx, nil)
	if err != nil {
		return fmt.Errorf("verify table: %w", err)
	}

	stats, err := db.Stats(ctx)
	if err != nil {
		return fmt.Errorf("table stats: %w", err)
	}

	first, last := table.ADRange()
	elapsed := time.Since(startTime)

	logger.Info("import verified",
		slog.Int("years", stats.Years),
		slog.Int("first_year", stats.FirstYear),
		slog.Int("last_year", stats.LastYear),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Years imported:      %d\n", imported)
	fmt.Printf("Years stored:        %d\n", stats.Years)
	fmt.Printf("BS range:            %d-%d\n", stats.FirstYear, stats.LastYear)
	fmt.Printf("AD range:            %s to %s\n", first, last)
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// readRows parses the CSV at path, or the embedded table when path is empty.
func readRows(path string, logger *slog.Logger) ([]calendar.YearRow, error) {
	if path == "" {
		logger.Info("using embedded year table")
		return calendar.DefaultRows()
	}

	logger.Info("reading CSV file", slog.String("path", path))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer f.Close()

	rows, err := calendar.ParseYearsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	for _, r := range rows {
		logger.Debug("year",
			slog.Int("year", r.Year),
			slog.String("ad_start", r.ADStart.Format("2006-01-02")),
			slog.Int("days", r.Days()),
		)
	}
	return rows, nil
}
