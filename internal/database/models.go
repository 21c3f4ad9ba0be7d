package database

import (
	"fmt"
	"time"

	"github.com/zapponejosh/sambat-api/internal/calendar"
)

// YearRecord is one row of the bs_years table.
type YearRecord struct {
	Year      int       `json:"year"`
	ADStart   string    `json:"ad_start"` // ISO 8601 format: YYYY-MM-DD
	Months    [12]int   `json:"months"`   // Baisakh through Chaitra
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Days returns the length of the year.
func (r YearRecord) Days() int {
	n := 0
	for _, m := range r.Months {
		n += m
	}
	return n
}

// Validate checks the fields that can be checked on a single row.
func (r YearRecord) Validate() error {
	if _, err := time.Parse("2006-01-02", r.ADStart); err != nil {
		return fmt.Errorf("ad_start %q must be YYYY-MM-DD", r.ADStart)
	}
	for i, n := range r.Months {
		if n < 29 || n > 32 {
			return fmt.Errorf("month %d has %d days, must be 29-32", i+1, n)
		}
	}
	return nil
}

// Row converts the record to a calendar.YearRow.
func (r YearRecord) Row() (calendar.YearRow, error) {
	start, err := time.Parse("2006-01-02", r.ADStart)
	if err != nil {
		return calendar.YearRow{}, fmt.Errorf("year %d: invalid ad_start %q: %w", r.Year, r.ADStart, err)
	}
	return calendar.YearRow{Year: r.Year, ADStart: start, Months: r.Months}, nil
}

// RecordFromRow converts a calendar.YearRow to a record.
func RecordFromRow(row calendar.YearRow) YearRecord {
	return YearRecord{
		Year:    row.Year,
		ADStart: row.ADStart.Format("2006-01-02"),
		Months:  row.Months,
	}
}

// TableStats summarizes the stored table.
type TableStats struct {
	Years     int    `json:"years"`
	FirstYear int    `json:"first_year,omitempty"`
	LastYear  int    `json:"last_year,omitempty"`
	FirstAD   string `json:"first_ad,omitempty"`
}
