package calendar

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := DefaultTable()
	if err != nil {
		t.Fatalf("DefaultTable() error = %v", err)
	}
	return tbl
}

func TestDefaultTable_Range(t *testing.T) {
	tbl := testTable(t)

	if got := tbl.FirstYear(); got != 2070 {
		t.Errorf("FirstYear() = %d, want 2070", got)
	}
	if got := tbl.LastYear(); got != 2090 {
		t.Errorf("LastYear() = %d, want 2090", got)
	}

	first, last := tbl.ADRange()
	if first != (Date{2013, 3, 14}) {
		t.Errorf("ADRange() first = %v, want 2013-04-14", first)
	}
	if last != (Date{2034, 3, 13}) {
		t.Errorf("ADRange() last = %v, want 2034-04-13", last)
	}
}

func TestBSToAD_KnownDates(t *testing.T) {
	tbl := testTable(t)

	tests := []struct {
		name string
		bs   Date
		ad   Date
	}{
		{"first day of table", Date{2070, 0, 1}, Date{2013, 3, 14}},
		{"new year 2080", Date{2080, 0, 1}, Date{2023, 3, 14}},
		{"new year 2081", Date{2081, 0, 1}, Date{2024, 3, 13}},
		{"shrawan 1 2081", Date{2081, 3, 1}, Date{2024, 6, 16}},
		{"asoj 1 2081", Date{2081, 5, 1}, Date{2024, 8, 17}},
		{"poush 17 2081", Date{2081, 8, 17}, Date{2025, 0, 1}},
		{"magh 1 2081", Date{2081, 9, 1}, Date{2025, 0, 14}},
		{"last day of 2081", Date{2081, 11, 30}, Date{2025, 3, 13}},
		{"new year 2082", Date{2082, 0, 1}, Date{2025, 3, 14}},
		{"last day of table", Date{2090, 11, 30}, Date{2034, 3, 13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.BSToAD(tt.bs)
			if err != nil {
				t.Fatalf("BSToAD(%v) error = %v", tt.bs, err)
			}
			if got != tt.ad {
				t.Errorf("BSToAD(%v) = %v, want %v", tt.bs, got, tt.ad)
			}

			back, err := tbl.ADToBS(tt.ad)
			if err != nil {
				t.Fatalf("ADToBS(%v) error = %v", tt.ad, err)
			}
			if back != tt.bs {
				t.Errorf("ADToBS(%v) = %v, want %v", tt.ad, back, tt.bs)
			}
		})
	}
}

func TestRoundTrip_EveryBSDay(t *testing.T) {
	tbl := testTable(t)

	count := 0
	for year := tbl.FirstYear(); year <= tbl.LastYear(); year++ {
		for month := 0; month < 12; month++ {
			n, err := tbl.DaysInBSMonth(year, month)
			if err != nil {
				t.Fatalf("DaysInBSMonth(%d, %d) error = %v", year, month, err)
			}
			for day := 1; day <= n; day++ {
				bs := Date{year, month, day}
				ad, err := tbl.BSToAD(bs)
				if err != nil {
					t.Fatalf("BSToAD(%v) error = %v", bs, err)
				}
				back, err := tbl.ADToBS(ad)
				if err != nil {
					t.Fatalf("ADToBS(%v) error = %v", ad, err)
				}
				if back != bs {
					t.Fatalf("round trip %v -> %v -> %v", bs, ad, back)
				}
				count++
			}
		}
	}

	first, last := tbl.ADRange()
	span := int(adTime(last).Sub(adTime(first))/(24*time.Hour)) + 1
	if count != span {
		t.Errorf("visited %d BS days, AD range spans %d", count, span)
	}
}

func TestConversion_UnsupportedEra(t *testing.T) {
	tbl := testTable(t)

	if _, err := tbl.BSToAD(Date{2069, 11, 30}); !errors.Is(err, ErrUnsupportedEra) {
		t.Errorf("BSToAD(2069) error = %v, want ErrUnsupportedEra", err)
	}
	if _, err := tbl.BSToAD(Date{2091, 0, 1}); !errors.Is(err, ErrUnsupportedEra) {
		t.Errorf("BSToAD(2091) error = %v, want ErrUnsupportedEra", err)
	}
	if _, err := tbl.ADToBS(Date{2013, 3, 13}); !errors.Is(err, ErrUnsupportedEra) {
		t.Errorf("ADToBS(2013-04-13) error = %v, want ErrUnsupportedEra", err)
	}
	if _, err := tbl.ADToBS(Date{2034, 3, 14}); !errors.Is(err, ErrUnsupportedEra) {
		t.Errorf("ADToBS(2034-04-14) error = %v, want ErrUnsupportedEra", err)
	}
	if _, err := tbl.ADToBS(Date{1800, 0, 1}); !errors.Is(err, ErrUnsupportedEra) {
		t.Errorf("ADToBS(1800) error = %v, want ErrUnsupportedEra", err)
	}
	if _, err := tbl.DaysInBSMonth(3000, 0); !errors.Is(err, ErrUnsupportedEra) {
		t.Errorf("DaysInBSMonth(3000) error = %v, want ErrUnsupportedEra", err)
	}
}

func TestConversion_InvalidDate(t *testing.T) {
	tbl := testTable(t)

	tests := []struct {
		name string
		fn   func() error
	}{
		{"BS day beyond month", func() error { _, err := tbl.BSToAD(Date{2081, 8, 30}); return err }},
		{"BS day zero", func() error { _, err := tbl.BSToAD(Date{2081, 8, 0}); return err }},
		{"BS month 12", func() error { _, err := tbl.BSToAD(Date{2081, 12, 1}); return err }},
		{"AD Feb 29 non-leap", func() error { _, err := tbl.ADToBS(Date{2025, 1, 29}); return err }},
		{"AD April 31", func() error { _, err := tbl.ADToBS(Date{2025, 3, 31}); return err }},
		{"AD month -1", func() error { _, err := tbl.ADToBS(Date{2025, -1, 1}); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrInvalidDate) {
				t.Errorf("error = %v, want ErrInvalidDate", err)
			}
		})
	}

	if _, err := tbl.ADToBS(Date{2024, 1, 29}); err != nil {
		t.Errorf("ADToBS(2024-02-29) error = %v", err)
	}
}

func TestWeekdayOfFirst(t *testing.T) {
	tbl := testTable(t)

	// 1 Poush 2081 is Monday 16 December 2024.
	wd, err := tbl.WeekdayOfFirst(2081, 8, BS)
	if err != nil {
		t.Fatalf("WeekdayOfFirst(BS) error = %v", err)
	}
	if wd != time.Monday {
		t.Errorf("WeekdayOfFirst(2081, Poush, BS) = %v, want Monday", wd)
	}

	wd, err = tbl.WeekdayOfFirst(2025, 0, AD)
	if err != nil {
		t.Fatalf("WeekdayOfFirst(AD) error = %v", err)
	}
	if wd != time.Wednesday {
		t.Errorf("WeekdayOfFirst(2025, January, AD) = %v, want Wednesday", wd)
	}

	if _, err := tbl.WeekdayOfFirst(2000, 0, BS); !errors.Is(err, ErrUnsupportedEra) {
		t.Errorf("WeekdayOfFirst(2000, BS) error = %v, want ErrUnsupportedEra", err)
	}
}

func TestNow_UsesClock(t *testing.T) {
	rows, err := DefaultRows()
	if err != nil {
		t.Fatalf("DefaultRows() error = %v", err)
	}
	clock := func() time.Time { return time.Date(2025, time.January, 1, 22, 30, 0, 0, time.UTC) }
	tbl, err := NewTable(rows, clock)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	now, err := tbl.Now()
	if err != nil {
		t.Fatalf("Now() error = %v", err)
	}
	want := DualDate{BS: Date{2081, 8, 17}, AD: Date{2025, 0, 1}}
	if now != want {
		t.Errorf("Now() = %+v, want %+v", now, want)
	}

	tbl, _ = NewTable(rows, func() time.Time { return time.Date(2050, 1, 1, 0, 0, 0, 0, time.UTC) })
	if _, err := tbl.Now(); !errors.Is(err, ErrUnsupportedEra) {
		t.Errorf("Now() outside table error = %v, want ErrUnsupportedEra", err)
	}
}

func TestNewTable_Validation(t *testing.T) {
	rows, err := DefaultRows()
	if err != nil {
		t.Fatalf("DefaultRows() error = %v", err)
	}

	if _, err := NewTable(nil, nil); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("NewTable(nil) error = %v, want ErrInvalidTable", err)
	}

	gap := append([]YearRow{}, rows[0], rows[2])
	if _, err := NewTable(gap, nil); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("NewTable(gap) error = %v, want ErrInvalidTable", err)
	}

	shifted := append([]YearRow{}, rows[:2]...)
	shifted[1].ADStart = shifted[1].ADStart.AddDate(0, 0, 1)
	if _, err := NewTable(shifted, nil); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("NewTable(shifted start) error = %v, want ErrInvalidTable", err)
	}

	short := append([]YearRow{}, rows[0])
	short[0].Months[3] = 28
	if _, err := NewTable(short, nil); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("NewTable(28 day month) error = %v, want ErrInvalidTable", err)
	}
}

func TestParseYearsCSV(t *testing.T) {
	input := `year,ad_start,m01,m02,m03,m04,m05,m06,m07,m08,m09,m10,m11,m12
2081,2024-04-13,31,31,32,32,31,30,30,30,29,30,30,30
2080,2023-04-14,31,32,31,32,31,30,30,30,29,29,30,30
`
	rows, err := ParseYearsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseYearsCSV() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Year != 2080 || rows[1].Year != 2081 {
		t.Errorf("rows not sorted by year: %d, %d", rows[0].Year, rows[1].Year)
	}
	if rows[1].Days() != 366 {
		t.Errorf("2081 Days() = %d, want 366", rows[1].Days())
	}
	if _, err := NewTable(rows, nil); err != nil {
		t.Errorf("NewTable(parsed) error = %v", err)
	}

	bad := "2081,2024-04-13,31,31,32,32,31,30,30,30,29,30,30,xx\n"
	if _, err := ParseYearsCSV(strings.NewReader(bad)); err == nil {
		t.Error("ParseYearsCSV(bad month) error = nil, want error")
	}
}
