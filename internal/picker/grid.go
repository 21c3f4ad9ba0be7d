package picker

import (
	"time"

	"github.com/zapponejosh/sambat-api/internal/calendar"
)

// GridDay is one selectable cell of a month grid.
type GridDay struct {
	Day      int               `json:"day"`
	Label    string            `json:"label"`
	Weekday  time.Weekday      `json:"weekday"`
	Date     calendar.DualDate `json:"date"`
	Selected bool              `json:"selected"`
	Today    bool              `json:"today"`
}

// MonthGrid lays out the displayed primary month. Leading is the number of
// empty cells before day 1 in a Sunday-first week.
type MonthGrid struct {
	Leading int       `json:"leading"`
	Days    []GridDay `json:"days"`
}

// Grid returns the days of the cursor's primary month. Every Day in the grid
// is a valid argument to SelectDay for the same cursor.
func (e *Engine) Grid(c Cursor) (MonthGrid, error) {
	primary := c.Language.Primary()
	a := c.Anchor.In(primary)

	n, err := calendar.DaysInMonth(e.oracle, primary, a.Year, a.Month)
	if err != nil {
		return MonthGrid{}, err
	}
	first, err := e.oracle.WeekdayOfFirst(a.Year, a.Month, primary)
	if err != nil {
		return MonthGrid{}, err
	}

	// Today is informational only; outside the table nothing is marked.
	today, nowErr := e.oracle.Now()

	grid := MonthGrid{Leading: int(first), Days: make([]GridDay, 0, n)}
	for d := 1; d <= n; d++ {
		dd, err := calendar.Convert(e.oracle, primary, calendar.Date{Year: a.Year, Month: a.Month, Day: d})
		if err != nil {
			return MonthGrid{}, err
		}
		grid.Days = append(grid.Days, GridDay{
			Day:      d,
			Label:    number(c.Language, d, 0),
			Weekday:  time.Weekday((int(first) + d - 1) % 7),
			Date:     dd,
			Selected: c.Selected != nil && *c.Selected == dd,
			Today:    nowErr == nil && today == dd,
		})
	}
	return grid, nil
}
