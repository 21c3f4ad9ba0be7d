package calendar

import (
	"fmt"
	"time"
)

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInADMonth returns the number of days in a Gregorian month.
// Month is zero based.
func DaysInADMonth(year, month int) int {
	switch month {
	case 1:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 3, 5, 8, 10:
		return 30
	default:
		return 31
	}
}

// NormalizeMonth adds delta months to (year, month) and carries the overflow
// or borrow into the year. Month is zero based; any delta is accepted.
func NormalizeMonth(year, month, delta int) (int, int) {
	m := month + delta
	y := year + floorDiv(m, 12)
	return y, ((m % 12) + 12) % 12
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// DayName returns the English weekday name (Sunday, Monday, etc.)
func DayName(wd time.Weekday) string {
	days := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	return days[wd]
}

// OrdinalSuffix returns the English ordinal suffix for n: "st", "nd", "rd"
// or "th". 11, 12 and 13 (and 111, 212, ...) always take "th".
func OrdinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// Ordinal returns the ordinal form of a number (1st, 2nd, 3rd, 4th, 11th, etc.)
func Ordinal(n int) string {
	return fmt.Sprintf("%d%s", n, OrdinalSuffix(n))
}

func adTime(d Date) time.Time {
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, time.UTC)
}

func validAD(d Date) error {
	if d.Month < 0 || d.Month > 11 {
		return fmt.Errorf("%w: AD month %d", ErrInvalidDate, d.Month+1)
	}
	if d.Day < 1 || d.Day > DaysInADMonth(d.Year, d.Month) {
		return fmt.Errorf("%w: AD %s has no day %d", ErrInvalidDate, time.Month(d.Month+1), d.Day)
	}
	return nil
}
