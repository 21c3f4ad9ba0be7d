package picker

import (
	"testing"
	"time"

	"github.com/zapponejosh/sambat-api/internal/calendar"
)

func TestGrid_NepaliMonth(t *testing.T) {
	e := testEngine(t)
	c := mustInit(t, e, "2081-09-17", Nepali)

	grid, err := e.Grid(c)
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}

	// 1 Poush 2081 is a Monday.
	if grid.Leading != int(time.Monday) {
		t.Errorf("Leading = %d, want %d", grid.Leading, time.Monday)
	}
	if len(grid.Days) != 29 {
		t.Fatalf("len(Days) = %d, want 29", len(grid.Days))
	}

	first := grid.Days[0]
	if first.Label != "१" {
		t.Errorf("Days[0].Label = %q, want %q", first.Label, "१")
	}
	if first.Date.AD != (calendar.Date{Year: 2024, Month: 11, Day: 16}) {
		t.Errorf("Days[0].Date.AD = %+v, want 2024-12-16", first.Date.AD)
	}
	if first.Weekday != time.Monday {
		t.Errorf("Days[0].Weekday = %v, want Monday", first.Weekday)
	}
	if grid.Days[6].Weekday != time.Sunday {
		t.Errorf("Days[6].Weekday = %v, want Sunday", grid.Days[6].Weekday)
	}

	for _, d := range grid.Days {
		want := d.Day == 17
		if d.Selected != want {
			t.Errorf("Days[%d].Selected = %v, want %v", d.Day, d.Selected, want)
		}
		if d.Today != want {
			t.Errorf("Days[%d].Today = %v, want %v", d.Day, d.Today, want)
		}
	}
}

func TestGrid_DaysAreSelectable(t *testing.T) {
	e := testEngine(t)
	c := mustInit(t, e, "2024-02-10", English)

	grid, err := e.Grid(c)
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	if len(grid.Days) != 29 {
		t.Fatalf("len(Days) = %d, want 29", len(grid.Days))
	}
	for _, d := range grid.Days {
		sel, err := e.SelectDay(c, d.Day)
		if err != nil {
			t.Fatalf("SelectDay(%d) error = %v", d.Day, err)
		}
		if sel.Selected != d.Date {
			t.Errorf("SelectDay(%d) = %+v, grid has %+v", d.Day, sel.Selected, d.Date)
		}
	}
}
