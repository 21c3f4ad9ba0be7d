package calendar

import (
	"errors"
	"testing"
)

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2024, true},
		{2025, false},
		{1900, false},
		{2000, true},
		{2100, false},
		{2400, true},
	}

	for _, tt := range tests {
		if got := IsLeapYear(tt.year); got != tt.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestDaysInADMonth(t *testing.T) {
	want := []int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	for m, n := range want {
		if got := DaysInADMonth(2025, m); got != n {
			t.Errorf("DaysInADMonth(2025, %d) = %d, want %d", m, got, n)
		}
	}
	if got := DaysInADMonth(2024, 1); got != 29 {
		t.Errorf("DaysInADMonth(2024, Feb) = %d, want 29", got)
	}
	if got := DaysInADMonth(1900, 1); got != 28 {
		t.Errorf("DaysInADMonth(1900, Feb) = %d, want 28", got)
	}
}

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		name              string
		year, month, dlta int
		wantYear, wantMon int
	}{
		{"no change", 2081, 5, 0, 2081, 5},
		{"forward within year", 2081, 5, 3, 2081, 8},
		{"forward carry", 2081, 11, 1, 2082, 0},
		{"forward twelve", 2081, 8, 12, 2082, 8},
		{"backward within year", 2081, 5, -2, 2081, 3},
		{"backward borrow", 2081, 0, -1, 2080, 11},
		{"backward twelve", 2081, 0, -12, 2080, 0},
		{"backward thirteen", 2081, 0, -13, 2079, 11},
		{"large forward", 2081, 3, 25, 2083, 4},
		{"large backward", 2081, 3, -25, 2079, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := NormalizeMonth(tt.year, tt.month, tt.dlta)
			if y != tt.wantYear || m != tt.wantMon {
				t.Errorf("NormalizeMonth(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.year, tt.month, tt.dlta, y, m, tt.wantYear, tt.wantMon)
			}
		})
	}
}

func TestNormalizeMonth_Closure(t *testing.T) {
	deltas := []int{1, -12, 7, 5, -1, 12, -13, 1}
	y, m := 2081, 8
	sum := 0
	for _, d := range deltas {
		y, m = NormalizeMonth(y, m, d)
		sum += d
	}
	if sum != 0 {
		t.Fatalf("test deltas sum to %d", sum)
	}
	if y != 2081 || m != 8 {
		t.Errorf("after zero-sum deltas got (%d, %d), want (2081, 8)", y, m)
	}
}

func TestOrdinalSuffix(t *testing.T) {
	tests := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th", 10: "th",
		11: "th", 12: "th", 13: "th", 14: "th",
		21: "st", 22: "nd", 23: "rd", 24: "th",
		30: "th", 31: "st", 32: "nd",
		101: "st", 111: "th", 112: "th", 113: "th", 122: "nd",
	}
	for n, want := range tests {
		if got := OrdinalSuffix(n); got != want {
			t.Errorf("OrdinalSuffix(%d) = %q, want %q", n, got, want)
		}
	}
	if got := Ordinal(22); got != "22nd" {
		t.Errorf("Ordinal(22) = %q, want %q", got, "22nd")
	}
}

func TestParseDateString(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2081-09-17", Date{2081, 8, 17}, false},
		{"2025-1-1", Date{2025, 0, 1}, false},
		{" 2025-01-31 ", Date{2025, 0, 31}, false},
		{"2081/09/17", Date{}, true},
		{"2081-09", Date{}, true},
		{"2081-xx-17", Date{}, true},
		{"2081-13-01", Date{}, true},
		{"2081-00-01", Date{}, true},
		{"2081-09-00", Date{}, true},
		{"2081-09-33", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateString(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateString) {
					t.Errorf("ParseDateString(%q) error = %v, want ErrInvalidDateString", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateString(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateString(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateString(t *testing.T) {
	if got := (Date{2081, 8, 7}).String(); got != "2081-09-07" {
		t.Errorf("String() = %q, want %q", got, "2081-09-07")
	}
}
