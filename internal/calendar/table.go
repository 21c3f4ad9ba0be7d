package calendar

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"
)

//go:embed data/bs_years.csv
var defaultYearsCSV []byte

// ErrInvalidTable is returned when year rows do not form a consistent table.
var ErrInvalidTable = errors.New("invalid calendar table")

// YearRow describes one BS year: the AD date of its first day (1 Baisakh)
// and the lengths of its twelve months.
type YearRow struct {
	Year    int
	ADStart time.Time
	Months  [12]int
}

// Days returns the length of the year.
func (r YearRow) Days() int {
	n := 0
	for _, m := range r.Months {
		n += m
	}
	return n
}

// Table is an Oracle backed by contiguous BS year rows. It is immutable once
// built and safe for concurrent use.
type Table struct {
	rows    []YearRow
	epoch   time.Time
	offsets []int // days from epoch to the first day of rows[i]
	total   int
	clock   func() time.Time
}

// NewTable builds a Table from year rows sorted by year. Every row's ADStart
// must equal the previous row's ADStart plus the previous year's length.
// A nil clock defaults to time.Now.
func NewTable(rows []YearRow, clock func() time.Time) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no years", ErrInvalidTable)
	}
	if clock == nil {
		clock = time.Now
	}
	t := &Table{
		rows:    make([]YearRow, len(rows)),
		offsets: make([]int, len(rows)),
		clock:   clock,
	}
	copy(t.rows, rows)
	for i := range t.rows {
		r := &t.rows[i]
		r.ADStart = time.Date(r.ADStart.Year(), r.ADStart.Month(), r.ADStart.Day(), 0, 0, 0, 0, time.UTC)
		for m, n := range r.Months {
			if n < 29 || n > 32 {
				return nil, fmt.Errorf("%w: BS %d month %d has %d days", ErrInvalidTable, r.Year, m+1, n)
			}
		}
		if i == 0 {
			t.epoch = r.ADStart
			continue
		}
		prev := t.rows[i-1]
		if r.Year != prev.Year+1 {
			return nil, fmt.Errorf("%w: year %d follows %d", ErrInvalidTable, r.Year, prev.Year)
		}
		want := prev.ADStart.AddDate(0, 0, prev.Days())
		if !r.ADStart.Equal(want) {
			return nil, fmt.Errorf("%w: BS %d starts %s, expected %s", ErrInvalidTable,
				r.Year, r.ADStart.Format("2006-01-02"), want.Format("2006-01-02"))
		}
		t.offsets[i] = t.offsets[i-1] + prev.Days()
	}
	last := len(t.rows) - 1
	t.total = t.offsets[last] + t.rows[last].Days()
	return t, nil
}

// ParseYearsCSV reads year rows from CSV with the header
// year,ad_start,m01..m12 where ad_start is YYYY-MM-DD.
func ParseYearsCSV(r io.Reader) ([]YearRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 14
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read years csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty csv", ErrInvalidTable)
	}
	var rows []YearRow
	for i, rec := range records {
		if i == 0 && rec[0] == "year" {
			continue
		}
		row, err := parseYearRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	return rows, nil
}

func parseYearRecord(rec []string) (YearRow, error) {
	var row YearRow
	year, err := strconv.Atoi(rec[0])
	if err != nil {
		return row, fmt.Errorf("invalid year %q: %w", rec[0], err)
	}
	start, err := time.Parse("2006-01-02", rec[1])
	if err != nil {
		return row, fmt.Errorf("invalid ad_start %q: %w", rec[1], err)
	}
	row.Year = year
	row.ADStart = start
	for m := 0; m < 12; m++ {
		n, err := strconv.Atoi(rec[m+2])
		if err != nil {
			return row, fmt.Errorf("invalid length for month %d: %w", m+1, err)
		}
		row.Months[m] = n
	}
	return row, nil
}

// DefaultRows returns the year rows embedded in the binary.
func DefaultRows() ([]YearRow, error) {
	return ParseYearsCSV(bytes.NewReader(defaultYearsCSV))
}

// DefaultTable returns a Table built from the embedded year rows using
// time.Now as its clock.
func DefaultTable() (*Table, error) {
	rows, err := DefaultRows()
	if err != nil {
		return nil, err
	}
	return NewTable(rows, nil)
}

// Rows returns a copy of the table's year rows.
func (t *Table) Rows() []YearRow {
	out := make([]YearRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// FirstYear returns the first BS year covered by the table.
func (t *Table) FirstYear() int { return t.rows[0].Year }

// LastYear returns the last BS year covered by the table.
func (t *Table) LastYear() int { return t.rows[len(t.rows)-1].Year }

// ADRange returns the first and last AD days covered by the table.
func (t *Table) ADRange() (Date, Date) {
	first := t.epoch
	last := t.epoch.AddDate(0, 0, t.total-1)
	return dateOf(first), dateOf(last)
}

func (t *Table) row(year int) (int, error) {
	i := year - t.rows[0].Year
	if i < 0 || i >= len(t.rows) {
		return 0, fmt.Errorf("%w: BS year %d outside %d-%d", ErrUnsupportedEra, year, t.FirstYear(), t.LastYear())
	}
	return i, nil
}

// DaysInBSMonth implements Oracle.
func (t *Table) DaysInBSMonth(year, month int) (int, error) {
	i, err := t.row(year)
	if err != nil {
		return 0, err
	}
	if month < 0 || month > 11 {
		return 0, fmt.Errorf("%w: BS month %d", ErrInvalidDate, month+1)
	}
	return t.rows[i].Months[month], nil
}

// BSToAD implements Oracle.
func (t *Table) BSToAD(d Date) (Date, error) {
	n, err := t.DaysInBSMonth(d.Year, d.Month)
	if err != nil {
		return Date{}, err
	}
	if d.Day < 1 || d.Day > n {
		return Date{}, fmt.Errorf("%w: BS %d month %d has no day %d", ErrInvalidDate, d.Year, d.Month+1, d.Day)
	}
	i := d.Year - t.rows[0].Year
	days := t.offsets[i] + d.Day - 1
	for m := 0; m < d.Month; m++ {
		days += t.rows[i].Months[m]
	}
	return dateOf(t.epoch.AddDate(0, 0, days)), nil
}

// ADToBS implements Oracle.
func (t *Table) ADToBS(d Date) (Date, error) {
	if err := validAD(d); err != nil {
		return Date{}, err
	}
	first, last := t.ADRange()
	// Bound by year first so that the day arithmetic below cannot overflow.
	if d.Year < first.Year || d.Year > last.Year {
		return Date{}, fmt.Errorf("%w: AD %s outside %s to %s", ErrUnsupportedEra, d, first, last)
	}
	days := int(adTime(d).Sub(t.epoch) / (24 * time.Hour))
	if days < 0 || days >= t.total {
		return Date{}, fmt.Errorf("%w: AD %s outside %s to %s", ErrUnsupportedEra, d, first, last)
	}
	i := sort.Search(len(t.offsets), func(i int) bool { return t.offsets[i] > days }) - 1
	rem := days - t.offsets[i]
	month := 0
	for rem >= t.rows[i].Months[month] {
		rem -= t.rows[i].Months[month]
		month++
	}
	return Date{Year: t.rows[i].Year, Month: month, Day: rem + 1}, nil
}

// WeekdayOfFirst implements Oracle.
func (t *Table) WeekdayOfFirst(year, month int, sys System) (time.Weekday, error) {
	first := Date{Year: year, Month: month, Day: 1}
	if sys == BS {
		ad, err := t.BSToAD(first)
		if err != nil {
			return 0, err
		}
		return adTime(ad).Weekday(), nil
	}
	if err := validAD(first); err != nil {
		return 0, err
	}
	return adTime(first).Weekday(), nil
}

// Now implements Oracle using the table's clock. Only the clock's calendar
// date is used.
func (t *Table) Now() (DualDate, error) {
	now := t.clock()
	ad := Date{Year: now.Year(), Month: int(now.Month()) - 1, Day: now.Day()}
	bs, err := t.ADToBS(ad)
	if err != nil {
		return DualDate{}, err
	}
	return DualDate{BS: bs, AD: ad}, nil
}

func dateOf(tm time.Time) Date {
	return Date{Year: tm.Year(), Month: int(tm.Month()) - 1, Day: tm.Day()}
}
