// Package calendar provides Bikram Sambat (BS) and Gregorian (AD) calendar
// primitives: concrete dates in either system, paired dual dates and the
// table-driven oracle that converts between the two.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// System identifies one of the two supported calendars.
type System int

const (
	// BS is the Bikram Sambat (Nepali) calendar.
	BS System = iota
	// AD is the Gregorian calendar.
	AD
)

func (s System) String() string {
	switch s {
	case BS:
		return "bs"
	case AD:
		return "ad"
	default:
		return fmt.Sprintf("System(%d)", int(s))
	}
}

// Other returns the opposite calendar.
func (s System) Other() System {
	if s == BS {
		return AD
	}
	return BS
}

// ParseSystem parses "bs" or "ad" in either case.
func ParseSystem(val string) (System, error) {
	switch strings.ToLower(val) {
	case "bs":
		return BS, nil
	case "ad":
		return AD, nil
	}
	return 0, fmt.Errorf("unknown calendar system %q, expected bs or ad", val)
}

// Errors reported by the calendar package and the engine built on it.
var (
	// ErrInvalidDateString is returned when a value cannot be parsed as a
	// numeric year, month and day triple.
	ErrInvalidDateString = errors.New("invalid date string")

	// ErrInvalidDate is returned when a month or day does not exist in
	// the calendar it was interpreted in.
	ErrInvalidDate = errors.New("invalid date")

	// ErrDayOutOfRange is returned when a day is selected beyond the
	// length of the displayed month.
	ErrDayOutOfRange = errors.New("day out of range")

	// ErrUnsupportedEra is returned when a year lies outside the range
	// covered by the conversion table.
	ErrUnsupportedEra = errors.New("unsupported era")
)

// Date is a concrete day in a single calendar. Month is zero based (0-11).
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String returns the date as YYYY-MM-DD with a one based month.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month+1, d.Day)
}

// FirstOfMonth returns the date truncated to day 1.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// DualDate pairs the BS and AD representation of the same day. When used as a
// month anchor both days are 1 and each half identifies a month only.
type DualDate struct {
	BS Date `json:"bs"`
	AD Date `json:"ad"`
}

// In returns the half of the dual date for the given calendar.
func (dd DualDate) In(sys System) Date {
	if sys == BS {
		return dd.BS
	}
	return dd.AD
}

// Anchor returns the month anchor of a concrete dual date.
func (dd DualDate) Anchor() DualDate {
	return DualDate{BS: dd.BS.FirstOfMonth(), AD: dd.AD.FirstOfMonth()}
}

// Oracle is the authority for converting between the two calendars and for
// calendar metadata.
type Oracle interface {
	BSToAD(d Date) (Date, error)
	ADToBS(d Date) (Date, error)
	DaysInBSMonth(year, month int) (int, error)
	WeekdayOfFirst(year, month int, sys System) (time.Weekday, error)
	Now() (DualDate, error)
}

// Convert converts a concrete day in sys to the equivalent dual date.
func Convert(o Oracle, sys System, d Date) (DualDate, error) {
	if sys == BS {
		ad, err := o.BSToAD(d)
		if err != nil {
			return DualDate{}, err
		}
		return DualDate{BS: d, AD: ad}, nil
	}
	bs, err := o.ADToBS(d)
	if err != nil {
		return DualDate{}, err
	}
	return DualDate{BS: bs, AD: d}, nil
}

// DaysInMonth returns the length of a month in either calendar.
func DaysInMonth(o Oracle, sys System, year, month int) (int, error) {
	if sys == BS {
		return o.DaysInBSMonth(year, month)
	}
	if month < 0 || month > 11 {
		return 0, fmt.Errorf("%w: month %d", ErrInvalidDate, month+1)
	}
	return DaysInADMonth(year, month), nil
}

// ParseDateString parses a YYYY-MM-DD shaped value into a Date with a zero
// based month. Only the shape and the month (1-12) and day (1-32) bounds are
// checked here; whether the day exists depends on the calendar.
func ParseDateString(val string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(val), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDateString, val)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q: %v", ErrInvalidDateString, val, err)
		}
		n[i] = v
	}
	if n[1] < 1 || n[1] > 12 {
		return Date{}, fmt.Errorf("%w: %q: month %d", ErrInvalidDateString, val, n[1])
	}
	if n[2] < 1 || n[2] > 32 {
		return Date{}, fmt.Errorf("%w: %q: day %d", ErrInvalidDateString, val, n[2])
	}
	return Date{Year: n[0], Month: n[1] - 1, Day: n[2]}, nil
}
