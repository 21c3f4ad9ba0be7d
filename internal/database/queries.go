package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zapponejosh/sambat-api/internal/calendar"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	// Try RFC3339 format first (with timezone)
	t, err := time.Parse(time.RFC3339, ns.String)
	if err == nil {
		return &t
	}

	// Try SQLite datetime format (no timezone)
	t, err = time.Parse("2006-01-02 15:04:05", ns.String)
	if err == nil {
		return &t
	}

	return nil
}

const yearColumns = `year, ad_start,
	m01, m02, m03, m04, m05, m06, m07, m08, m09, m10, m11, m12,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanYear(s rowScanner) (*YearRecord, error) {
	var r YearRecord
	var createdAt, updatedAt sql.NullString
	dest := []any{&r.Year, &r.ADStart}
	for i := range r.Months {
		dest = append(dest, &r.Months[i])
	}
	dest = append(dest, &createdAt, &updatedAt)

	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	if t := parseTimestamp(createdAt); t != nil {
		r.CreatedAt = *t
	}
	if t := parseTimestamp(updatedAt); t != nil {
		r.UpdatedAt = *t
	}
	return &r, nil
}

// =============================================================================
// BS Year Queries
// =============================================================================

func upsertYear(ctx context.Context, q querier, r *YearRecord) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("year %d: %w", r.Year, err)
	}
	args := []any{r.Year, r.ADStart}
	for _, m := range r.Months {
		args = append(args, m)
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO bs_years (year, ad_start,
			m01, m02, m03, m04, m05, m06, m07, m08, m09, m10, m11, m12)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(year) DO UPDATE SET
			ad_start = excluded.ad_start,
			m01 = excluded.m01, m02 = excluded.m02, m03 = excluded.m03,
			m04 = excluded.m04, m05 = excluded.m05, m06 = excluded.m06,
			m07 = excluded.m07, m08 = excluded.m08, m09 = excluded.m09,
			m10 = excluded.m10, m11 = excluded.m11, m12 = excluded.m12,
			updated_at = datetime('now')
	`, args...)
	if err != nil {
		return fmt.Errorf("upsert year %d: %w", r.Year, err)
	}
	return nil
}

// UpsertYear inserts a year or replaces the stored one.
func (db *DB) UpsertYear(ctx context.Context, r *YearRecord) error {
	return upsertYear(ctx, db.DB, r)
}

// UpsertYear inserts a year or replaces the stored one within the transaction.
func (tx *Tx) UpsertYear(ctx context.Context, r *YearRecord) error {
	return upsertYear(ctx, tx.Tx, r)
}

// GetYear returns a single year. Returns ErrNotFound if it is not stored.
func (db *DB) GetYear(ctx context.Context, year int) (*YearRecord, error) {
	row := db.QueryRowContext(ctx, `SELECT `+yearColumns+` FROM bs_years WHERE year = ?`, year)
	r, err := scanYear(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query year %d: %w", year, err)
	}
	return r, nil
}

func listYears(ctx context.Context, q querier) ([]YearRecord, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+yearColumns+` FROM bs_years ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("query years: %w", err)
	}
	defer rows.Close()

	var out []YearRecord
	for rows.Next() {
		r, err := scanYear(rows)
		if err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate years: %w", err)
	}
	return out, nil
}

// ListYears returns every stored year in ascending order.
func (db *DB) ListYears(ctx context.Context) ([]YearRecord, error) {
	return listYears(ctx, db.DB)
}

// ListYears returns every stored year in ascending order within the transaction.
func (tx *Tx) ListYears(ctx context.Context) ([]YearRecord, error) {
	return listYears(ctx, tx.Tx)
}

// CountYears returns the number of stored years.
func (db *DB) CountYears(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bs_years`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count years: %w", err)
	}
	return n, nil
}

// DeleteYear removes a year. Returns ErrNotFound if it is not stored.
func (db *DB) DeleteYear(ctx context.Context, year int) error {
	res, err := db.ExecContext(ctx, `DELETE FROM bs_years WHERE year = ?`, year)
	if err != nil {
		return fmt.Errorf("delete year %d: %w", year, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete year %d: %w", year, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats summarizes the stored table.
func (db *DB) Stats(ctx context.Context) (*TableStats, error) {
	var stats TableStats
	var first, last sql.NullInt64
	var firstAD sql.NullString
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), MIN(year), MAX(year),
			(SELECT ad_start FROM bs_years ORDER BY year LIMIT 1)
		FROM bs_years
	`).Scan(&stats.Years, &first, &last, &firstAD)
	if err != nil {
		return nil, fmt.Errorf("query table stats: %w", err)
	}
	stats.FirstYear = int(first.Int64)
	stats.LastYear = int(last.Int64)
	stats.FirstAD = firstAD.String
	return &stats, nil
}

// ImportRows upserts rows inside a single transaction and returns how many
// were written.
func (db *DB) ImportRows(ctx context.Context, rows []calendar.YearRow) (int, error) {
	count := 0
	err := db.WithTx(ctx, func(tx *Tx) error {
		for _, row := range rows {
			r := RecordFromRow(row)
			if err := tx.UpsertYear(ctx, &r); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SeedDefault stores the embedded year table if the bs_years table is empty.
// Returns the number of years inserted.
func (db *DB) SeedDefault(ctx context.Context) (int, error) {
	n, err := db.CountYears(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		db.logger.Debug("calendar table already seeded", slog.Int("years", n))
		return 0, nil
	}

	rows, err := calendar.DefaultRows()
	if err != nil {
		return 0, fmt.Errorf("load embedded years: %w", err)
	}
	count, err := db.ImportRows(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("seed years: %w", err)
	}
	db.logger.Info("calendar table seeded", slog.Int("years", count))
	return count, nil
}

// LoadTable builds a calendar oracle from the stored years. The stored rows
// must form a valid table (see calendar.NewTable).
func (db *DB) LoadTable(ctx context.Context, clock func() time.Time) (*calendar.Table, error) {
	records, err := db.ListYears(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]calendar.YearRow, 0, len(records))
	for _, r := range records {
		row, err := r.Row()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	table, err := calendar.NewTable(rows, clock)
	if err != nil {
		return nil, fmt.Errorf("build calendar table: %w", err)
	}
	return table, nil
}

// UpsertYearChecked upserts r and rebuilds the calendar table in the same
// transaction. The write is rolled back if the resulting table is invalid.
func (db *DB) UpsertYearChecked(ctx context.Context, r *YearRecord, clock func() time.Time) (*calendar.Table, error) {
	var table *calendar.Table
	err := db.WithTx(ctx, func(tx *Tx) error {
		if err := tx.UpsertYear(ctx, r); err != nil {
			return err
		}
		records, err := tx.ListYears(ctx)
		if err != nil {
			return err
		}
		rows := make([]calendar.YearRow, 0, len(records))
		for _, rec := range records {
			row, err := rec.Row()
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		table, err = calendar.NewTable(rows, clock)
		return err
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}
