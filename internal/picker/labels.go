package picker

import (
	"fmt"

	"github.com/zapponejosh/sambat-api/internal/calendar"
)

// Header holds the two labels shown above a month grid.
type Header struct {
	Primary        string `json:"primary"`
	SecondaryRange string `json:"secondary_range"`
}

// span converts the first and last day of the month identified by anchor in
// sys into the other calendar.
func (e *Engine) span(anchor calendar.Date, sys calendar.System) (calendar.Date, calendar.Date, error) {
	n, err := calendar.DaysInMonth(e.oracle, sys, anchor.Year, anchor.Month)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	first, err := calendar.Convert(e.oracle, sys, calendar.Date{Year: anchor.Year, Month: anchor.Month, Day: 1})
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	last, err := calendar.Convert(e.oracle, sys, calendar.Date{Year: anchor.Year, Month: anchor.Month, Day: n})
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	other := sys.Other()
	return first.In(other), last.In(other), nil
}

// MonthNameRange returns the month names of the other calendar that the
// month anchor of sys spans: a single name, or "A/B" when the month crosses a
// boundary in the other calendar.
func (e *Engine) MonthNameRange(anchor calendar.Date, sys calendar.System, lang Language) (string, error) {
	first, last, err := e.span(anchor, sys)
	if err != nil {
		return "", err
	}
	a := MonthName(sys.Other(), lang, first.Month)
	b := MonthName(sys.Other(), lang, last.Month)
	if a == b {
		return a, nil
	}
	return a + "/" + b, nil
}

// YearRange returns the years of the other calendar that the month anchor of
// sys spans: a single year, or "A-B".
func (e *Engine) YearRange(anchor calendar.Date, sys calendar.System, lang Language) (string, error) {
	first, last, err := e.span(anchor, sys)
	if err != nil {
		return "", err
	}
	if first.Year == last.Year {
		return YearLabel(lang, first.Year), nil
	}
	return YearLabel(lang, first.Year) + "-" + YearLabel(lang, last.Year), nil
}

// HeaderLabels returns the primary month label of the cursor, e.g.
// "January 2025", and the overlapping months of the other calendar, e.g.
// "Poush/Magh 2081", both written for lang.
func (e *Engine) HeaderLabels(c Cursor, lang Language) (Header, error) {
	primary := c.Language.Primary()
	a := c.Anchor.In(primary)

	months, err := e.MonthNameRange(a, primary, lang)
	if err != nil {
		return Header{}, fmt.Errorf("month range: %w", err)
	}
	years, err := e.YearRange(a, primary, lang)
	if err != nil {
		return Header{}, fmt.Errorf("year range: %w", err)
	}

	return Header{
		Primary:        MonthName(primary, lang, a.Month) + " " + YearLabel(lang, a.Year),
		SecondaryRange: months + " " + years,
	}, nil
}
